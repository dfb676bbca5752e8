// Package config provides centralized configuration management.
// This is the single source of truth for server, simulation, and
// network settings — other packages take these values as parameters
// rather than reading the environment themselves.
package config

import (
	"os"
	"strconv"
)

// ServerConfig holds HTTP control-surface settings.
type ServerConfig struct {
	Port int
}

func DefaultServer() ServerConfig {
	return ServerConfig{Port: 8080}
}

func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()
	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	return cfg
}

// SimConfig holds the simulation's seed and real-time pacing.
type SimConfig struct {
	MasterSeed        uint64
	SpaceAdventureFPS int // how many times per second cmd/server steps an active space.Scene
}

func DefaultSim() SimConfig {
	return SimConfig{
		MasterSeed:        1,
		SpaceAdventureFPS: 30,
	}
}

func SimFromEnv() SimConfig {
	cfg := DefaultSim()
	if s := getEnvUint64("MASTER_SEED", 0); s > 0 {
		cfg.MasterSeed = s
	}
	if fps := getEnvInt("SPACE_ADVENTURE_FPS", 0); fps > 0 {
		cfg.SpaceAdventureFPS = fps
	}
	return cfg
}

// NetworkConfig holds the peer gossip transport's own settings.
type NetworkConfig struct {
	PeerListenAddr string   // where Hub.HandleWebSocket is mounted
	SeedPeers      []string // websocket URLs to Dial on startup
}

func DefaultNetwork() NetworkConfig {
	return NetworkConfig{PeerListenAddr: "/gossip"}
}

func NetworkFromEnv() NetworkConfig {
	cfg := DefaultNetwork()
	if addr := os.Getenv("PEER_LISTEN_ADDR"); addr != "" {
		cfg.PeerListenAddr = addr
	}
	if peers := os.Getenv("SEED_PEERS"); peers != "" {
		cfg.SeedPeers = splitNonEmpty(peers, ',')
	}
	return cfg
}

// ArchiveConfig holds the past-game/tournament history store's
// connection settings.
type ArchiveConfig struct {
	MongoURI     string
	DatabaseName string
	Enabled      bool
}

func DefaultArchive() ArchiveConfig {
	return ArchiveConfig{
		MongoURI:     "mongodb://localhost:27017",
		DatabaseName: "armada",
		Enabled:      false,
	}
}

func ArchiveFromEnv() ArchiveConfig {
	cfg := DefaultArchive()
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		cfg.MongoURI = uri
		cfg.Enabled = true
	}
	if db := os.Getenv("MONGO_DATABASE"); db != "" {
		cfg.DatabaseName = db
	}
	return cfg
}

// AppConfig is the complete application configuration.
type AppConfig struct {
	Server  ServerConfig
	Sim     SimConfig
	Network NetworkConfig
	Archive ArchiveConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Server:  ServerFromEnv(),
		Sim:     SimFromEnv(),
		Network: NetworkFromEnv(),
		Archive: ArchiveFromEnv(),
	}
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvUint64(key string, defaultVal uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			return u
		}
	}
	return defaultVal
}

func splitNonEmpty(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
