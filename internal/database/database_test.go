package database_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JoeWHoward/DockerPlayground/internal/database"
	"github.com/JoeWHoward/DockerPlayground/internal/database/databasetest"
	"github.com/JoeWHoward/DockerPlayground/internal/model"
)

func TestCreateAll(t *testing.T) {
	db := databasetest.New(t)
	ctx := context.Background()

	migrator := db.ORM.Migrator()
	assert.True(t, migrator.HasTable("user_account"))
	assert.True(t, migrator.HasTable("address"))
	assert.True(t, migrator.HasTable("genome"))

	// Existing tables and their rows survive a second run.
	sess := db.NewSession(ctx)
	require.NoError(t, sess.Add(&model.Genome{RsidNumber: "rs53576", Chromosome: 3, Genotype: "AG"}))
	require.NoError(t, sess.Commit())
	require.NoError(t, sess.Close())

	require.NoError(t, db.CreateAll(ctx))

	sess = db.NewSession(ctx)
	defer sess.Close()
	rows, err := database.Find[model.Genome](sess, "rsid_number = ?", "rs53576")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "AG", rows[0].Genotype)
}

func TestPing(t *testing.T) {
	db := databasetest.New(t)
	assert.NoError(t, db.Ping(context.Background()))
}

func TestNew_UnsupportedDriver(t *testing.T) {
	cfg := databasetest.Config(t)
	cfg.Database.Driver = "oracle"

	logger := zerolog.Nop()
	_, err := database.New(cfg, &logger, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
