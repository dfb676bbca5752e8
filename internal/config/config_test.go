package config

import "testing"

func TestDefaultsWithNoEnv(t *testing.T) {
	cfg := Load()
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Sim.SpaceAdventureFPS != 30 {
		t.Fatalf("expected default fps 30, got %d", cfg.Sim.SpaceAdventureFPS)
	}
	if cfg.Archive.Enabled {
		t.Fatalf("expected archive disabled without MONGO_URI")
	}
}

func TestServerFromEnvOverridesPort(t *testing.T) {
	t.Setenv("PORT", "9090")
	cfg := ServerFromEnv()
	if cfg.Port != 9090 {
		t.Fatalf("expected overridden port 9090, got %d", cfg.Port)
	}
}

func TestArchiveFromEnvEnablesWhenURISet(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://example:27017")
	cfg := ArchiveFromEnv()
	if !cfg.Enabled {
		t.Fatalf("expected archive enabled when MONGO_URI is set")
	}
	if cfg.MongoURI != "mongodb://example:27017" {
		t.Fatalf("expected URI to be read from env, got %s", cfg.MongoURI)
	}
}

func TestNetworkFromEnvSplitsSeedPeers(t *testing.T) {
	t.Setenv("SEED_PEERS", "ws://a:8080/gossip,ws://b:8080/gossip")
	cfg := NetworkFromEnv()
	if len(cfg.SeedPeers) != 2 {
		t.Fatalf("expected 2 seed peers, got %d", len(cfg.SeedPeers))
	}
	if cfg.SeedPeers[0] != "ws://a:8080/gossip" || cfg.SeedPeers[1] != "ws://b:8080/gossip" {
		t.Fatalf("unexpected split result: %v", cfg.SeedPeers)
	}
}
