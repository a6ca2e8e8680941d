// Package store connects to the data store and persists the session history
// and streak counter
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"strconv"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/lockin/internal/apperr"
	"github.com/ayoisaiah/lockin/internal/osutil"
	"github.com/ayoisaiah/lockin/ledger"
)

const (
	bucketHistory = "history"
	bucketStats   = "stats"

	keyRecords = "records"
	keyStreak  = "streak"
)

var errLockinRunning = &apperr.Error{
	Message: "is lockin already running? Only one instance can be active at a time",
}

var pathToDB string

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

// SaveRecords serializes the whole history and stores it under a single key.
func (c *Client) SaveRecords(records []ledger.Record) error {
	value, err := json.Marshal(records)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketHistory)).Put([]byte(keyRecords), value)
	})
}

// LoadRecords reads back the persisted history. Corrupt data is logged and
// treated as an empty history so a damaged file can never prevent startup.
func (c *Client) LoadRecords() ([]ledger.Record, error) {
	var records []ledger.Record

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketHistory)).Get([]byte(keyRecords))
		if len(b) == 0 {
			return nil
		}

		if uerr := json.Unmarshal(b, &records); uerr != nil {
			slog.Error(
				"history data is unreadable, starting with an empty history",
				slog.Any("error", uerr),
			)

			records = nil
		}

		return nil
	})

	return records, err
}

// SaveStreak persists the streak counter.
func (c *Client) SaveStreak(streak int) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketStats)).
			Put([]byte(keyStreak), []byte(strconv.Itoa(streak)))
	})
}

// LoadStreak reads back the streak counter, defaulting to zero.
func (c *Client) LoadStreak() (int, error) {
	var streak int

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketStats)).Get([]byte(keyStreak))
		if len(b) == 0 {
			return nil
		}

		n, serr := strconv.Atoi(string(b))
		if serr != nil {
			slog.Error(
				"streak data is unreadable, resetting to zero",
				slog.Any("error", serr),
			)

			return nil
		}

		streak = n

		return nil
	})

	return streak, err
}

func (c *Client) Open() error {
	db, err := openDB(pathToDB)
	if err != nil {
		return err
	}

	*c = Client{
		db,
	}

	return nil
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = osutil.FilePermission

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		// a lock held by another process surfaces as a timeout
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errLockinRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	pathToDB = dbPath

	db, err := openDB(pathToDB)
	if err != nil {
		return nil, err
	}
	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(bucketHistory))
		if err != nil {
			return err
		}

		_, err = tx.CreateBucketIfNotExists([]byte(bucketStats))

		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		db,
	}, nil
}
