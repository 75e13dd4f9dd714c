//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"trip_hotels/internal/app"
	"trip_hotels/internal/domain"
	mysqlrepo "trip_hotels/internal/storage/mysql"
)

// ---------- small helpers ----------

// migrationsDir defaults to the repo's migrations/ folder.
func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not reachable: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=trip",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "trip")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

// ---------- the test ----------
func TestRepo_MySQL_UpsertAndQuery(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	n := app.NewNormalizer("Cambodia")
	kep := domain.Region{Name: "Kep", ExternalID: 1463}
	kampot := domain.Region{Name: "Kampot", ExternalID: 1461}
	hs := []domain.HotelRecord{
		n.Normalize(map[string]any{"hotelId": 77, "hotelName": "Kep View", "star": 5, "commentScore": "4.8"}, kep),
		n.Normalize(map[string]any{"hotelId": 78, "hotelName": "សណ្ឋាគារ Kampot", "imgUrl": "https://img/78.jpg"}, kampot),
	}
	if err := repo.SaveHotels(ctx, hs); err != nil {
		t.Fatalf("SaveHotels: %v", err)
	}

	got, err := repo.GetHotel(ctx, "trip-77")
	if err != nil {
		t.Fatalf("GetHotel: %v", err)
	}
	if got.Name != "Kep View" || got.Rating != 4.8 || len(got.RoomTypes) != 2 || got.RoomTypes[1].Price != 75 {
		t.Fatalf("unexpected hotel: %+v", got)
	}

	// second run updates in place
	hs[1].Price = 99
	if err := repo.SaveHotels(ctx, hs); err != nil {
		t.Fatalf("SaveHotels again: %v", err)
	}
	list, err := repo.ListHotels(ctx, "")
	if err != nil {
		t.Fatalf("ListHotels: %v", err)
	}
	if len(list) != 2 || list[0].ID != "trip-77" || list[1].Price != 99 || list[1].Name != "សណ្ឋាគារ Kampot" {
		t.Fatalf("unexpected list: %+v", list)
	}

	byCity, _ := repo.ListHotels(ctx, "Kampot")
	if len(byCity) != 1 || byCity[0].Images[0] != "https://img/78.jpg" {
		t.Fatalf("unexpected city list: %+v", byCity)
	}

	if _, err := repo.GetHotel(ctx, "trip-0"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
