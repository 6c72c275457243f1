package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mauricevan/bedrijfsbeheer3.0-sub006/internal/database"
)

func TestNew_Unreachable(t *testing.T) {
	_, err := database.New(context.Background(), "postgres://user:pw@127.0.0.1:1/none?sslmode=disable&connect_timeout=1")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pinging database")
}
