// Package widget implements the posts browser: it validates a user id,
// fetches that user's posts, keeps the rendered list and status line, and
// mirrors the last query into a key-value store so it survives restarts.
package widget

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/ilinovom/posts-browser/internal/model"
	"github.com/ilinovom/posts-browser/internal/repository"
	"github.com/ilinovom/posts-browser/internal/service"
)

// Storage keys.
const (
	LastUserIDKey = "lab_fetch_last_user_id"
	PostsDataKey  = "lab_fetch_posts_data"
)

var (
	// ErrSuperseded is returned by Fetch when a newer Submit or a Clear
	// happened while the request was in flight. The response is dropped.
	ErrSuperseded = errors.New("request superseded")
	// ErrCorruptedStorage is returned by Restore when the saved posts
	// could not be decoded. The saved value has already been removed.
	ErrCorruptedStorage = errors.New("corrupted saved posts")
)

// PostSource fetches the decoded posts of a user.
type PostSource interface {
	PostsByUser(ctx context.Context, userID int) (service.Result, error)
}

// Item is one entry of the rendered list.
type Item struct {
	PostID int
	Title  string
	Body   string
	// Placeholder marks the single "no posts" entry.
	Placeholder bool
}

// View is a copy of the widget state for front ends.
type View struct {
	Input    string
	Remember bool
	Status   Status
	Items    []Item
	Loading  bool
}

// Request is a validated submission returned by Submit.
type Request struct {
	UserID     int
	generation uint64
}

// Widget holds the state of one posts browser. It is safe for concurrent
// use; the lock is not held during network calls.
type Widget struct {
	store repository.Store
	posts PostSource
	log   *zap.Logger

	mu         sync.Mutex
	input      string
	remember   bool
	status     Status
	items      []Item
	generation uint64
	inFlight   bool
}

// New returns a widget in its initial state. Call Restore to load saved data.
func New(store repository.Store, posts PostSource, logger *zap.Logger) *Widget {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Widget{
		store:  store,
		posts:  posts,
		log:    logger,
		status: Status{Message: MsgInitial},
	}
}

// Restore loads the remembered user id and the saved posts. A stored id
// that is not a valid user id is removed. Saved posts that cannot be
// decoded, or that hold no valid record, are removed and reported
// through the status line; the returned error then wraps
// ErrCorruptedStorage.
func (w *Widget) Restore(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if pref, ok := w.loadPreferenceLocked(ctx); ok {
		w.input = strconv.Itoa(pref.UserID)
		w.remember = pref.Remember
	}

	raw, err := w.store.Get(ctx, PostsDataKey)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		w.log.Error("read saved posts", zap.Error(err))
		w.setStatusLocked(MsgReadFailed, KindError)
		return fmt.Errorf("read saved posts: %w", err)
	}

	posts, rejected, err := model.DecodePosts([]byte(raw))
	if err != nil {
		return w.discardCorruptedLocked(ctx, err)
	}
	if rejected > 0 && len(posts) == 0 {
		return w.discardCorruptedLocked(ctx, fmt.Errorf("all %d saved records are invalid", rejected))
	}
	if rejected > 0 {
		w.log.Warn("dropped invalid saved posts", zap.Int("rejected", rejected))
	}
	if len(posts) == 0 {
		return nil
	}
	if err := w.renderLocked(ctx, posts); err != nil {
		return err
	}
	w.setStatusLocked(MsgRestored, KindSuccess)
	return nil
}

// discardCorruptedLocked removes the saved posts and reports cause.
func (w *Widget) discardCorruptedLocked(ctx context.Context, cause error) error {
	w.log.Error("parse saved posts", zap.Error(cause))
	if rmErr := w.store.Remove(ctx, PostsDataKey); rmErr != nil {
		w.log.Error("remove corrupted posts", zap.Error(rmErr))
	}
	w.setStatusLocked(MsgCorrupted, KindError)
	return fmt.Errorf("%w: %v", ErrCorruptedStorage, cause)
}

func (w *Widget) loadPreferenceLocked(ctx context.Context) (model.Preference, bool) {
	raw, err := w.store.Get(ctx, LastUserIDKey)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			w.log.Error("read saved user id", zap.Error(err))
		}
		return model.Preference{}, false
	}
	id, err := model.ParseUserID(raw)
	if err != nil {
		w.log.Warn("discarding saved user id", zap.String("value", raw), zap.Error(err))
		if rmErr := w.store.Remove(ctx, LastUserIDKey); rmErr != nil {
			w.log.Error("remove saved user id", zap.Error(rmErr))
		}
		return model.Preference{}, false
	}
	return model.Preference{UserID: id, Remember: true}, true
}

// Submit records the form values and validates the user id. On success the
// status switches to loading and the returned Request must be passed to
// Fetch. Invalid input never reaches the network, and it supersedes any
// request still in flight.
func (w *Widget) Submit(raw string, remember bool) (Request, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.input = raw
	w.remember = remember
	id, err := model.ParseUserID(raw)
	if err != nil {
		w.generation++
		w.inFlight = false
		w.setStatusLocked(MsgInvalidUserID, KindError)
		return Request{}, err
	}
	w.generation++
	w.inFlight = true
	w.setStatusLocked(MsgLoading, KindLoading)
	return Request{UserID: id, generation: w.generation}, nil
}

// SetRemember updates the remember toggle. It is read when a fetch
// succeeds.
func (w *Widget) SetRemember(remember bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.remember = remember
}

// Fetch performs the request issued by Submit. A failure is reported
// through the status line and returned. No retries are made.
func (w *Widget) Fetch(ctx context.Context, req Request) error {
	if req.generation == 0 {
		return errors.New("request was not issued by Submit")
	}
	res, fetchErr := w.posts.PostsByUser(ctx, req.UserID)

	w.mu.Lock()
	defer w.mu.Unlock()

	if req.generation != w.generation {
		w.log.Debug("dropping superseded response", zap.Int("user_id", req.UserID))
		return ErrSuperseded
	}
	w.inFlight = false
	if fetchErr != nil {
		w.log.Error("load posts", zap.Int("user_id", req.UserID), zap.Error(fetchErr))
		w.setStatusLocked(fmt.Sprintf(msgErrorFmt, fetchErr.Error()), KindError)
		return fetchErr
	}

	msg := fmt.Sprintf(msgSuccessFmt, len(res.Posts))
	if res.Rejected > 0 {
		msg += fmt.Sprintf(msgSkippedFmt, res.Rejected)
	}
	w.setStatusLocked(msg, KindSuccess)
	_ = w.renderLocked(ctx, res.Posts)
	w.applyPreferenceLocked(ctx, req.UserID)
	return nil
}

// Load runs Submit and Fetch in sequence.
func (w *Widget) Load(ctx context.Context, raw string, remember bool) error {
	req, err := w.Submit(raw, remember)
	if err != nil {
		return err
	}
	return w.Fetch(ctx, req)
}

func (w *Widget) applyPreferenceLocked(ctx context.Context, userID int) {
	var err error
	if w.remember {
		err = w.store.Set(ctx, LastUserIDKey, strconv.Itoa(userID))
	} else {
		err = w.store.Remove(ctx, LastUserIDKey)
	}
	if err != nil {
		w.log.Error("save user id", zap.Bool("remember", w.remember), zap.Error(err))
		w.setStatusLocked(MsgSaveIDFailed, KindError)
	}
}

// Render replaces the list with posts and writes them to storage. A failed
// write is reported through the status line and returned, but the list is
// kept.
func (w *Widget) Render(ctx context.Context, posts []model.Post) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.renderLocked(ctx, posts)
}

func (w *Widget) renderLocked(ctx context.Context, posts []model.Post) error {
	if len(posts) == 0 {
		w.items = []Item{{Title: MsgNoPosts, Placeholder: true}}
	} else {
		items := make([]Item, 0, len(posts))
		for _, p := range posts {
			item := Item{PostID: p.ID, Title: p.Title, Body: p.Body}
			if item.Title == "" {
				item.Title = MsgNoTitle
			}
			if item.Body == "" {
				item.Body = MsgNoBody
			}
			items = append(items, item)
		}
		w.items = items
	}

	encoded, err := model.EncodePosts(posts)
	if err == nil {
		err = w.store.Set(ctx, PostsDataKey, encoded)
	}
	if err != nil {
		w.log.Error("save posts", zap.Int("count", len(posts)), zap.Error(err))
		w.setStatusLocked(MsgSaveFailed, KindError)
		return fmt.Errorf("save posts: %w", err)
	}
	return nil
}

// Clear empties the list, removes the saved posts and resets the status.
// The remembered user id is left alone. A request in flight is superseded.
func (w *Widget) Clear(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.generation++
	w.inFlight = false
	w.items = nil
	w.setStatusLocked(MsgInitial, KindNeutral)
	if err := w.store.Remove(ctx, PostsDataKey); err != nil {
		w.log.Error("remove saved posts", zap.Error(err))
		w.setStatusLocked(MsgClearFailed, KindError)
		return fmt.Errorf("remove saved posts: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (w *Widget) Snapshot() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	items := make([]Item, len(w.items))
	copy(items, w.items)
	return View{
		Input:    w.input,
		Remember: w.remember,
		Status:   w.status,
		Items:    items,
		Loading:  w.inFlight,
	}
}

func (w *Widget) setStatusLocked(message string, kind Kind) {
	w.status = Status{Message: message, Kind: kind}
}
