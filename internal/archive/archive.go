// Package archive persists completed games and finished tournaments
// to MongoDB, so history survives past the in-memory World's lifetime.
// Nothing in internal/world or internal/control depends on this
// package; cmd/server calls it after a game/tournament completes.
package archive

import (
	"context"

	"github.com/corsair-league/armada/internal/clock"
	"github.com/corsair-league/armada/internal/model"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Store wraps a mongo.Client scoped to one database. IDs are stored as
// their string form rather than raw UUID bytes, trading a few bytes of
// document size for documents that are readable with a plain mongo
// shell and stable across model type renames.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and verifies the connection with a Ping,
// mirroring the connect-then-ping sequence of a typical mongo-driver
// bootstrap.
func Connect(ctx context.Context, uri, databaseName string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "archive: connect")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "archive: ping")
	}
	return &Store{client: client, db: client.Database(databaseName)}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// gameDoc is GameSummary flattened to archive-friendly field types.
type gameDoc struct {
	ID         string     `bson:"_id"`
	HomeTeamID string     `bson:"home_team_id"`
	AwayTeamID string     `bson:"away_team_id"`
	HomeScore  int        `bson:"home_score"`
	AwayScore  int        `bson:"away_score"`
	Location   string     `bson:"location"`
	PlayedAt   clock.Tick `bson:"played_at"`
}

func toGameDoc(g model.GameSummary) gameDoc {
	return gameDoc{
		ID:         g.ID.String(),
		HomeTeamID: g.HomeTeamID.String(),
		AwayTeamID: g.AwayTeamID.String(),
		HomeScore:  g.HomeScore,
		AwayScore:  g.AwayScore,
		Location:   g.Location.String(),
		PlayedAt:   g.PlayedAt,
	}
}

func (d gameDoc) summary() model.GameSummary {
	return model.GameSummary{
		ID:         model.GameID(parseUUID(d.ID)),
		HomeTeamID: model.TeamID(parseUUID(d.HomeTeamID)),
		AwayTeamID: model.TeamID(parseUUID(d.AwayTeamID)),
		HomeScore:  d.HomeScore,
		AwayScore:  d.AwayScore,
		Location:   model.PlanetID(parseUUID(d.Location)),
		PlayedAt:   d.PlayedAt,
	}
}

// parseUUID returns the zero UUID on a malformed string rather than an
// error; archived IDs are always written by toGameDoc, so a parse
// failure here would mean on-disk corruption, not caller error.
func parseUUID(s string) uuid.UUID {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}
	}
	return id
}

func (s *Store) gamesCollection() *mongo.Collection {
	return s.db.Collection("past_games")
}

// RecordGame upserts a completed game's summary. Upsert rather than
// plain insert because a game may be archived more than once if
// cmd/server retries after a transient write failure.
func (s *Store) RecordGame(ctx context.Context, g model.GameSummary) error {
	doc := toGameDoc(g)
	_, err := s.gamesCollection().ReplaceOne(ctx,
		bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(err, "archive: record game")
	}
	return nil
}

// RecentGamesForTeam returns a team's most recently played archived
// games, newest first, capped at limit.
func (s *Store) RecentGamesForTeam(ctx context.Context, teamID model.TeamID, limit int64) ([]model.GameSummary, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"home_team_id": teamID.String()},
		bson.M{"away_team_id": teamID.String()},
	}}
	opts := options.Find().SetSort(bson.D{{Key: "played_at", Value: -1}}).SetLimit(limit)
	cur, err := s.gamesCollection().Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "archive: recent games")
	}
	defer cur.Close(ctx)

	var out []model.GameSummary
	for cur.Next(ctx) {
		var doc gameDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, errors.Wrap(err, "archive: decode game")
		}
		out = append(out, doc.summary())
	}
	return out, cur.Err()
}

// tournamentDoc is the archived shape of a finished Tournament:
// just the organizer, planet, final participant list and bracket,
// enough to render a results page without reconstructing the whole
// in-memory struct.
type tournamentDoc struct {
	ID           string           `bson:"_id"`
	Name         string           `bson:"name"`
	Organizer    string           `bson:"organizer"`
	Planet       string           `bson:"planet"`
	Participants []participantDoc `bson:"participants"`
	Bracket      [][]string       `bson:"bracket"`
	EndedAt      clock.Tick       `bson:"ended_at"`
}

type participantDoc struct {
	TeamID string  `bson:"team_id"`
	Name   string  `bson:"name"`
	Seed   float64 `bson:"seed"`
}

func (s *Store) tournamentsCollection() *mongo.Collection {
	return s.db.Collection("past_tournaments")
}

// RecordTournament archives a finished tournament's final bracket and
// participant list.
func (s *Store) RecordTournament(ctx context.Context, t *model.Tournament, endedAt clock.Tick) error {
	doc := tournamentDoc{
		ID:        t.ID.String(),
		Name:      t.Name,
		Organizer: t.Organizer.String(),
		Planet:    t.Planet.String(),
		EndedAt:   endedAt,
	}
	for _, p := range t.Participants {
		doc.Participants = append(doc.Participants, participantDoc{
			TeamID: p.TeamID.String(),
			Name:   p.Name,
			Seed:   p.Seed,
		})
	}
	for _, round := range t.Bracket {
		var ids []string
		for _, gameID := range round {
			ids = append(ids, gameID.String())
		}
		doc.Bracket = append(doc.Bracket, ids)
	}

	_, err := s.tournamentsCollection().ReplaceOne(ctx,
		bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(err, "archive: record tournament")
	}
	return nil
}
