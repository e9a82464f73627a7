package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/wavefmapp/wavefm-core/internal/clock"
	"github.com/wavefmapp/wavefm-core/internal/config"
	"github.com/wavefmapp/wavefm-core/internal/domain"
	"github.com/wavefmapp/wavefm-core/internal/logger"
	"github.com/wavefmapp/wavefm-core/internal/notify"
	"github.com/wavefmapp/wavefm-core/internal/player"
	"github.com/wavefmapp/wavefm-core/internal/recommend"
	"github.com/wavefmapp/wavefm-core/internal/service"
	"github.com/wavefmapp/wavefm-core/internal/store"
	"github.com/wavefmapp/wavefm-core/internal/validation"
)

// simulateCmd drives the engine through a scripted listening session
// against an in-memory store, with one simulated listening second per
// tick interval. Useful for eyeballing the reward curve end to end.
func simulateCmd() *cobra.Command {
	var (
		username string
		seconds  int
		tick     time.Duration
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Drive a scripted listening session against an in-memory store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(username, seconds, tick, seed)
		},
	}

	cmd.Flags().StringVar(&username, "user", "demo", "Username to simulate")
	cmd.Flags().IntVar(&seconds, "seconds", 120, "Simulated listening seconds")
	cmd.Flags().DurationVar(&tick, "tick", 5*time.Millisecond, "Real time per simulated second")
	cmd.Flags().Int64Var(&seed, "seed", 1, "Vote seeding randomness")
	return cmd
}

func runSimulation(username string, seconds int, tick time.Duration, seed int64) error {
	ctx := context.Background()
	log := logger.New(logger.Config{Level: logger.ParseLevel("info")})

	db, err := store.NewInMemory(log.Logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	engine := buildEngine(db, log, config.SessionConfig{TickInterval: tick}, seed)
	defer engine.Close()

	sess, err := engine.Login(ctx, username)
	if err != nil {
		return err
	}

	catalog := engine.Stations.Stations(sess)
	songs := []domain.NowPlaying{
		domain.NewNowPlaying("Boards of Canada", "Roygbiv", ""),
		domain.NewNowPlaying("Tycho", "Awake", ""),
		domain.NewNowPlaying("FM-84", "Running in the Night", ""),
		domain.NewNowPlaying("", domain.TitleLiveStream, ""),
		domain.NewNowPlaying("Com Truise", "Brokendate", ""),
	}

	// Rotate stations and songs while the ticker accumulates time.
	perStation := seconds / len(catalog[:3])
	for i, station := range catalog[:3] {
		if err := engine.Session.SelectStation(ctx, sess, station); err != nil {
			return err
		}
		np := songs[i%len(songs)]
		engine.Session.OnNowPlayingUpdate(ctx, &np)
		time.Sleep(time.Duration(perStation) * tick)

		if err := engine.Votes.Cast(ctx, sess, np.SongID, domain.VoteLike); err != nil {
			log.Warn("vote failed", "error", err)
		}
	}

	if _, err := engine.Stations.ToggleFavorite(ctx, sess, catalog[0].StreamURL); err != nil {
		log.Warn("favorite failed", "error", err)
	}

	stats := engine.Stats.Stats(sess)
	fmt.Println()
	fmt.Printf("=== %s after ~%ds of listening ===\n", username, seconds)
	fmt.Printf("total time:    %ds\n", stats.TotalTime)
	fmt.Printf("points:        %d\n", stats.Points)
	fmt.Printf("streak:        %d (max %d)\n", stats.CurrentStreak, stats.MaxStreak)
	fmt.Printf("genres:        %v\n", stats.GenresPlayed)
	fmt.Printf("history:       %d songs\n", len(stats.SongHistory))
	fmt.Printf("achievements:  %d unlocked\n", len(engine.Profile.Profile(sess).Achievements))
	for _, toast := range engine.Notify.Items() {
		fmt.Printf("toast: [%s] %s %s\n", toast.Type, toast.Title, toast.Message)
	}

	return engine.Logout(ctx, sess)
}

// buildEngine wires the service graph by hand. The simulation skips the
// DI container so it can inject its own store, tick interval, and seed.
func buildEngine(db *store.Store, log *logger.Logger, sessCfg config.SessionConfig, seed int64) *service.Engine {
	c := clock.System()
	pointsCfg := config.PointsConfig{
		PerMinute:            1,
		MilestoneEvery:       10,
		PeriodicToastSeconds: 300,
		ThemeCost:            50,
		SubmissionCost:       20,
		VoteAward:            1,
	}

	queue := notify.NewQueue(c, log.Logger, domain.ToastDisplayDuration, domain.ToastExitDuration)
	v := validation.New()
	profile := service.NewProfileService(db, queue, c, log.Logger)
	points := service.NewPointsService(profile, queue, pointsCfg, log.Logger)
	achievements := service.NewAchievementService(profile, queue, c, log.Logger)
	stats := service.NewStatsService(profile, points, achievements, c, queue, log.Logger)
	votes := service.NewVoteService(profile, points, rand.New(rand.NewSource(seed)), log.Logger)
	session := service.NewSessionService(stats, votes, player.Noop{}, c, sessCfg, log.Logger)
	stations := service.NewStationService(profile, points, achievements, v, queue, pointsCfg, domain.DefaultCatalog(), log.Logger)
	alarm := service.NewAlarmService(profile, stations, session, v, c, queue, log.Logger)
	rec := recommend.NewService(nil, log.Logger)

	return service.NewEngine(profile, session, stats, points, achievements, alarm, votes, stations, rec, queue, db, log.Logger)
}
