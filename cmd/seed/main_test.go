package main

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	data := &SeedData{
		GRCs:    []string{"Kampung Admiralty"},
		Admins:  []Admin{{Name: "Ops", Email: "ops@example.com", Password: "secret123"}},
		Users:   []User{{Name: "Amy", Email: "amy@example.com", Password: "secret123", Role: "youth", Verified: true, Points: 50}},
		Rewards: []Reward{{Name: "Kopi voucher", PointsCost: 20}},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO grcs").WithArgs("Kampung Admiralty").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO admins").
		WithArgs("Ops", "ops@example.com", sqlmock.AnyArg(), "standard").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO users").
		WithArgs("Amy", "amy@example.com", sqlmock.AnyArg(), "youth", "verified", int32(50)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO rewards").
		WithArgs("Kopi voucher", "", int32(20), nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, populate(context.Background(), db, data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPopulate_RollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO grcs").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err = populate(context.Background(), db, &SeedData{GRCs: []string{"Bishan"}})
	assert.ErrorContains(t, err, "Bishan")
	assert.NoError(t, mock.ExpectationsWereMet())
}
