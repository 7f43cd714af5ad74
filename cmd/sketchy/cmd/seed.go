package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	internalErrors "github.com/sketchy-app/sketchy/internal/errors"
	"github.com/sketchy-app/sketchy/model"
	"github.com/sketchy-app/sketchy/services"
	"github.com/sketchy-app/sketchy/store"
)

const (
	seedPlace        = "Москва, Красная площадь"
	seedPreviewCount = 3
)

// newSeedCmd creates the seed command.
func newSeedCmd(configPath *string) *cobra.Command {
	var (
		login  string
		count  int
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a user with demo sketches",
		Long: `Create the user if it does not exist yet and add demo sketches to it.
Sketches are named sketch_<i> and point at the bundled preview images.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return fmt.Errorf("--count must not be negative, got %d", count)
			}

			settings, err := loadSettings(*configPath, dbPath)
			if err != nil {
				return err
			}
			if settings.Database.Path == "" {
				return fmt.Errorf("seeding needs a database file, set --db or database.path")
			}

			st, err := store.Open(settings.Database.Path)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			_, err = seedSketches(cmd.Context(), st, login, count, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVar(&login, "user", "demo", "login of the user to seed")
	cmd.Flags().IntVar(&count, "count", 10, "number of demo sketches to create")
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite database file (overrides database.path)")

	return cmd
}

// seedSketches ensures the user exists and creates count demo sketches for it.
func seedSketches(ctx context.Context, st services.Store, login string, count int, out io.Writer) (model.User, error) {
	user, err := st.GetUserByLogin(ctx, login)
	if errors.Is(err, internalErrors.ErrUserNotFound) {
		user, err = st.CreateUser(ctx, model.User{Login: login})
		if err == nil {
			_, _ = fmt.Fprintf(out, "Created user %s (id %d)\n", user.Login, user.ID)
		}
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to prepare user %s: %w", login, err)
	}

	for i := 0; i < count; i++ {
		_, err := st.CreateSketch(ctx, model.Sketch{
			Name:     fmt.Sprintf("sketch_%d", i),
			Place:    seedPlace,
			Image:    fmt.Sprintf("../preview-sketch-%d.jpg", i%seedPreviewCount+1),
			AuthorID: user.ID,
		})
		if err != nil {
			return model.User{}, fmt.Errorf("failed to create sketch %d: %w", i, err)
		}
	}

	_, _ = fmt.Fprintf(out, "Seeded %d sketches for %s\n", count, user.Login)
	return user, nil
}
