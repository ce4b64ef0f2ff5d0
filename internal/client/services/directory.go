package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

// Commit identifies a mutation acknowledged by the server. Seq increases by
// one per commit.
type Commit struct {
	Seq uint64
	Op  string
}

type StatusResult struct {
	Updated int
	Message string
}

type DeleteResult struct {
	Deleted int
	Message string
}

type DeleteUnverifiedResult struct {
	Count   int
	Message string
}

// DirectoryService manages the remote user collection and a cached copy of
// its last listing.
//
// Every mutation runs in two phases: the request itself, which yields a
// Commit, then Refetch for that commit. The exported mutators perform both
// and return once the refetch has resolved. When only the refetch fails the
// mutation result is returned together with a *RefetchError.
//
// Mutations are serialized; overlapping List calls share one request.
type DirectoryService interface {
	List(ctx context.Context) ([]models.User, error)
	SetStatus(ctx context.Context, ids []string, status models.Status) (StatusResult, error)
	Delete(ctx context.Context, ids []string) (DeleteResult, error)
	DeleteUnverified(ctx context.Context) (DeleteUnverifiedResult, error)
	Refetch(ctx context.Context, c Commit) error
	// Snapshot returns the cached users and whether they reflect every
	// commit made so far.
	Snapshot() (users []models.User, authoritative bool)
	// Reset forgets the cached listing, e.g. after logout.
	Reset()
}

type directoryService struct {
	client client.Client
	log    logging.Logger

	mutate sync.Mutex
	flight singleflight.Group

	mu        sync.RWMutex
	users     []models.User
	loaded    bool
	committed uint64 // seq of the latest commit
	fetched   uint64 // commit seq the cached listing was requested after
}

func NewDirectoryService(c client.Client, log logging.Logger) DirectoryService {
	return &directoryService{client: c, log: log.With("service", "directory")}
}

// List fetches the full collection in server order and replaces the cache.
// Calls that overlap and follow the same commit share one request and its
// outcome, including cancellation of the first caller's context.
func (d *directoryService) List(ctx context.Context) ([]models.User, error) {
	d.mu.RLock()
	seq := d.committed
	d.mu.RUnlock()

	v, err, shared := d.flight.Do(strconv.FormatUint(seq, 10), func() (any, error) {
		users, err := d.client.ListUsers(ctx)
		if err != nil {
			return nil, err
		}
		d.store(seq, users)
		return users, nil
	})
	if err != nil {
		d.log.Warn(ctx, "list users failed", "error", err)
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := v.([]models.User)
	d.log.Debug(ctx, "users listed", "count", len(users), "shared", shared)
	return slices.Clone(users), nil
}

// store keeps users unless a listing requested after a newer commit has
// already landed.
func (d *directoryService) store(seq uint64, users []models.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loaded && seq < d.fetched {
		return
	}
	d.users = users
	d.fetched = seq
	d.loaded = true
}

func (d *directoryService) Refetch(ctx context.Context, c Commit) error {
	if _, err := d.List(ctx); err != nil {
		d.log.Warn(ctx, "refetch failed", "op", c.Op, "seq", c.Seq, "error", err)
		return &RefetchError{Commit: c, Err: err}
	}
	return nil
}

func (d *directoryService) Snapshot() ([]models.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.users), d.loaded && d.fetched >= d.committed
}

func (d *directoryService) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = nil
	d.loaded = false
}

func (d *directoryService) commit(op string) Commit {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.committed++
	return Commit{Seq: d.committed, Op: op}
}

func (d *directoryService) SetStatus(ctx context.Context, ids []string, status models.Status) (StatusResult, error) {
	if !status.Valid() {
		return StatusResult{}, invalidField("status", "must be Unverified, Active or Blocked")
	}
	valid := wellFormedIDs(ids)
	if len(valid) == 0 {
		return StatusResult{}, invalidField("ids", "no well-formed user ids")
	}

	d.mutate.Lock()
	defer d.mutate.Unlock()

	resp, err := d.client.UpdateUsers(ctx, client.UpdateUsersRequest{IDs: valid, Status: status.Code()})
	if err != nil {
		return StatusResult{}, fmt.Errorf("update users: %w", err)
	}
	c := d.commit("set-status")
	d.log.Info(ctx, "user status changed", "count", len(valid), "status", status.String(), "seq", c.Seq)

	res := StatusResult{Updated: len(valid), Message: resp.Message}
	return res, d.Refetch(ctx, c)
}

func (d *directoryService) Delete(ctx context.Context, ids []string) (DeleteResult, error) {
	valid := wellFormedIDs(ids)
	if len(valid) == 0 {
		return DeleteResult{}, invalidField("ids", "no well-formed user ids")
	}

	d.mutate.Lock()
	defer d.mutate.Unlock()

	resp, err := d.client.DeleteUsers(ctx, client.DeleteUsersRequest{IDs: valid})
	if err != nil {
		return DeleteResult{}, fmt.Errorf("delete users: %w", err)
	}
	c := d.commit("delete")
	d.log.Info(ctx, "users deleted", "count", len(valid), "seq", c.Seq)

	res := DeleteResult{Deleted: len(valid), Message: resp.Message}
	return res, d.Refetch(ctx, c)
}

// DeleteUnverified removes every unverified account. A zero count is a
// successful outcome.
func (d *directoryService) DeleteUnverified(ctx context.Context) (DeleteUnverifiedResult, error) {
	d.mutate.Lock()
	defer d.mutate.Unlock()

	resp, err := d.client.DeleteUnverified(ctx)
	if err != nil {
		return DeleteUnverifiedResult{}, fmt.Errorf("delete unverified users: %w", err)
	}
	c := d.commit("delete-unverified")
	d.log.Info(ctx, "unverified users deleted", "count", resp.Count, "seq", c.Seq)

	res := DeleteUnverifiedResult{Count: resp.Count, Message: resp.Message}
	return res, d.Refetch(ctx, c)
}

// wellFormedIDs keeps canonical 36-character UUIDs, dropping duplicates and
// preserving order.
func wellFormedIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if !WellFormedID(id) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// WellFormedID reports whether id is a canonical hyphenated UUID.
func WellFormedID(id string) bool {
	return len(id) == 36 && uuid.Validate(id) == nil
}
