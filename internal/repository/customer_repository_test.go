package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/customer-bootstrap/internal/model"
	"github.com/unclebandit/customer-bootstrap/internal/repository"
)

var columns = []string{"customer_id", "first_name", "last_name", "company", "city", "country"}

func newRepo(t *testing.T) (*repository.CustomerRepository, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return &repository.CustomerRepository{DB: conn}, mock
}

func TestSaveAll(t *testing.T) {
	repo, mock := newRepo(t)
	customers := []model.Customer{
		{ID: "C001", FirstName: "Maria", LastName: "Gomez", Company: "Acme", City: "Santiago", Country: "Chile"},
		{ID: "C002", FirstName: "Ana", LastName: "Rojas", Company: "Initech", City: "Valparaiso", Country: "chile"},
	}

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO customers")
	for _, c := range customers {
		prep.ExpectExec().
			WithArgs(c.ID, c.FirstName, c.LastName, c.Company, c.City, c.Country).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	n, err := repo.SaveAll(context.Background(), customers)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAll_Empty(t *testing.T) {
	repo, mock := newRepo(t)

	n, err := repo.SaveAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveAll_RollsBackOnError(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectPrepare("INSERT INTO customers").
		ExpectExec().
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	n, err := repo.SaveAll(context.Background(), []model.Customer{{ID: "C001"}})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "C001")
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT customer_id, first_name").
		WithArgs("C001").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("C001", "Maria", "Gomez", "Acme", "Santiago", "Chile"))

	c, err := repo.GetByID(context.Background(), "C001")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Santiago", c.City)
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT customer_id").
		WithArgs("C404").
		WillReturnRows(sqlmock.NewRows(columns))

	c, err := repo.GetByID(context.Background(), "C404")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestListByCountry(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("WHERE LOWER\\(TRIM\\(country\\)\\) = LOWER\\(TRIM\\(\\$1\\)\\)").
		WithArgs(" CHILE ").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("C001", "Maria", "Gomez", "Acme", "Santiago", "Chile").
			AddRow("C002", "Ana", "Rojas", "Initech", "Valparaiso", "chile"))

	customers, err := repo.ListByCountry(context.Background(), " CHILE ")
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "C002", customers[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByCountry_Empty(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("SELECT customer_id").WillReturnRows(sqlmock.NewRows(columns))

	customers, err := repo.ListByCountry(context.Background(), "hungary")
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)
}

func TestListByCountry_BlankListsAll(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery("WHERE TRIM\\(\\$1\\) = ''").
		WithArgs("  ").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("C001", "Maria", "Gomez", "Acme", "Santiago", "Chile").
			AddRow("C002", "Zsofia", "Nagy", "Initech", "Budapest", "Hungary"))

	customers, err := repo.ListByCountry(context.Background(), "  ")
	require.NoError(t, err)
	assert.Len(t, customers, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
