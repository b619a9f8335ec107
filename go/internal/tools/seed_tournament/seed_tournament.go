package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mcdev12/fantasygolf/go/internal/dbconfig"
)

//go:embed schema.sql
var schema string

func main() {
	fixturePath := flag.String("fixture", "go/internal/tools/seed_tournament/testdata/tournament.json", "tournament fixture to load")
	applySchema := flag.Bool("schema", false, "create tables and triggers before seeding")
	flag.Parse()

	ctx := context.Background()

	// 1) Load the JSON fixture
	data, err := os.ReadFile(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read fixture: %v\n", err)
		os.Exit(1)
	}
	fixture, err := parseFixture(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// 2) Connect using shared dbconfig
	cfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if *applySchema {
		if _, err := pool.Exec(ctx, schema); err != nil {
			fmt.Fprintf(os.Stderr, "apply schema: %v\n", err)
			os.Exit(1)
		}
	}

	// 3) Upsert everything in one transaction so the listener sees one change
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		return seed(ctx, tx, fixture)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}

	// 4) Print summary
	fmt.Printf(
		"Tournament seed complete: %s, %d tours, %d tour cards, %d golfers, %d teams\n",
		fixture.Tournament.Name, len(fixture.Tours), len(fixture.TourCards), len(fixture.Golfers), len(fixture.Teams),
	)
}

func seed(ctx context.Context, tx pgx.Tx, f *Fixture) error {
	var tierID any
	if f.Tier != nil {
		tierID = f.Tier.ID
		if _, err := tx.Exec(ctx, `
            INSERT INTO tiers (id, name, points, payouts)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (id) DO UPDATE
            SET name = EXCLUDED.name, points = EXCLUDED.points, payouts = EXCLUDED.payouts
        `, f.Tier.ID, f.Tier.Name, f.Tier.Points, f.Tier.Payouts); err != nil {
			return fmt.Errorf("insert tier: %w", err)
		}
	}

	for _, t := range f.Tours {
		if _, err := tx.Exec(ctx, `
            INSERT INTO tours (id, name, short_form, season_id)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT (id) DO UPDATE
            SET name = EXCLUDED.name, short_form = EXCLUDED.short_form
        `, t.ID, t.Name, t.ShortForm, f.SeasonID); err != nil {
			return fmt.Errorf("insert tour %s: %w", t.ID, err)
		}
	}

	t := f.Tournament
	if _, err := tx.Exec(ctx, `
        INSERT INTO tournaments (id, name, start_date, end_date, current_round, live_play, tier_id, season_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (id) DO UPDATE
        SET name = EXCLUDED.name, start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date,
            current_round = EXCLUDED.current_round, live_play = EXCLUDED.live_play, tier_id = EXCLUDED.tier_id
    `, t.ID, t.Name, t.start, t.end, t.CurrentRound, t.LivePlay, tierID, f.SeasonID); err != nil {
		return fmt.Errorf("insert tournament: %w", err)
	}

	for _, c := range f.TourCards {
		if _, err := tx.Exec(ctx, `
            INSERT INTO tour_cards (id, member_id, tour_id, season_id, display_name)
            VALUES ($1, $2, $3, $4, $5)
            ON CONFLICT (id) DO UPDATE
            SET tour_id = EXCLUDED.tour_id, display_name = EXCLUDED.display_name
        `, c.ID, c.MemberID, c.TourID, f.SeasonID, c.DisplayName); err != nil {
			return fmt.Errorf("insert tour card %s: %w", c.ID, err)
		}
	}

	for _, g := range f.Golfers {
		if _, err := tx.Exec(ctx, `
            INSERT INTO golfers (
              id, tournament_id, api_id, player_name, score, today, thru,
              round_one, round_two, round_three, round_four,
              position, pos_change, group_number, world_rank
            ) VALUES (
              $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15
            )
            ON CONFLICT (id) DO UPDATE
            SET score = EXCLUDED.score, today = EXCLUDED.today, thru = EXCLUDED.thru,
                round_one = EXCLUDED.round_one, round_two = EXCLUDED.round_two,
                round_three = EXCLUDED.round_three, round_four = EXCLUDED.round_four,
                position = EXCLUDED.position, pos_change = EXCLUDED.pos_change
        `,
			g.ID, t.ID, g.APIID, g.PlayerName, g.Score, g.Today, g.Thru,
			g.Rounds[0], g.Rounds[1], g.Rounds[2], g.Rounds[3],
			g.Position, g.PosChange, g.Group, g.WorldRank,
		); err != nil {
			return fmt.Errorf("insert golfer %s: %w", g.PlayerName, err)
		}
	}

	for _, tm := range f.Teams {
		if _, err := tx.Exec(ctx, `
            INSERT INTO teams (
              id, tournament_id, tour_card_id, score, today, thru,
              round_one, round_two, round_three, round_four,
              position, past_position, golfer_ids
            ) VALUES (
              $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13::uuid[]
            )
            ON CONFLICT (id) DO UPDATE
            SET score = EXCLUDED.score, today = EXCLUDED.today, thru = EXCLUDED.thru,
                round_one = EXCLUDED.round_one, round_two = EXCLUDED.round_two,
                round_three = EXCLUDED.round_three, round_four = EXCLUDED.round_four,
                position = EXCLUDED.position, past_position = EXCLUDED.past_position,
                golfer_ids = EXCLUDED.golfer_ids
        `,
			tm.ID, t.ID, tm.TourCardID, tm.Score, tm.Today, tm.Thru,
			tm.Rounds[0], tm.Rounds[1], tm.Rounds[2], tm.Rounds[3],
			tm.Position, tm.PastPosition, golferIDs(tm.GolferIDs),
		); err != nil {
			return fmt.Errorf("insert team %s: %w", tm.ID, err)
		}
	}
	return nil
}
