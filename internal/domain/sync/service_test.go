package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"notesync/internal/domain/folder"
	"notesync/internal/domain/note"
)

// recordKey mirrors the composite primary key: ids are client-assigned and
// only unique per owner.
type recordKey struct {
	userID string
	id     string
}

// fakeRepo keeps server state in maps so reconciliation outcomes can be
// asserted against actual stored rows rather than call recordings.
type fakeRepo struct {
	notes   map[recordKey]note.Note
	folders map[recordKey]folder.Folder
	txErr   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		notes:   make(map[recordKey]note.Note),
		folders: make(map[recordKey]folder.Folder),
	}
}

func (f *fakeRepo) WithinTx(_ context.Context, fn func(Repository) error) error {
	if f.txErr != nil {
		return f.txErr
	}
	return fn(f)
}

func (f *fakeRepo) GetNote(_ context.Context, userID, noteID string) (*note.Note, error) {
	n, ok := f.notes[recordKey{userID, noteID}]
	if !ok {
		return nil, note.ErrNotFound
	}
	return &n, nil
}

func (f *fakeRepo) InsertNote(_ context.Context, n *note.Note) error {
	f.notes[recordKey{n.UserID, n.ID}] = *n
	return nil
}

func (f *fakeRepo) UpdateNote(_ context.Context, n *note.Note) error {
	f.notes[recordKey{n.UserID, n.ID}] = *n
	return nil
}

func (f *fakeRepo) NotesChangedSince(_ context.Context, userID string, since *time.Time) ([]note.Note, error) {
	res := []note.Note{}
	for _, n := range f.notes {
		if n.UserID != userID {
			continue
		}
		if since == nil || n.UpdatedAt.After(*since) || (n.SyncedAt != nil && n.SyncedAt.After(*since)) {
			res = append(res, n)
		}
	}
	return res, nil
}

func (f *fakeRepo) GetFolder(_ context.Context, userID, folderID string) (*folder.Folder, error) {
	fl, ok := f.folders[recordKey{userID, folderID}]
	if !ok {
		return nil, folder.ErrNotFound
	}
	return &fl, nil
}

func (f *fakeRepo) InsertFolder(_ context.Context, fl *folder.Folder) error {
	f.folders[recordKey{fl.UserID, fl.ID}] = *fl
	return nil
}

func (f *fakeRepo) UpdateFolder(_ context.Context, fl *folder.Folder) error {
	f.folders[recordKey{fl.UserID, fl.ID}] = *fl
	return nil
}

func (f *fakeRepo) FoldersChangedSince(_ context.Context, userID string, since *time.Time) ([]folder.Folder, error) {
	res := []folder.Folder{}
	for _, fl := range f.folders {
		if fl.UserID != userID {
			continue
		}
		if since == nil || fl.UpdatedAt.After(*since) || (fl.SyncedAt != nil && fl.SyncedAt.After(*since)) {
			res = append(res, fl)
		}
	}
	return res, nil
}

func (f *fakeRepo) ReassignFolderNotes(_ context.Context, userID, folderID string, now time.Time) error {
	for key, n := range f.notes {
		if n.UserID == userID && n.FolderID != nil && *n.FolderID == folderID {
			n.FolderID = nil
			n.UpdatedAt = now
			n.SyncedAt = &now
			f.notes[key] = n
		}
	}
	return nil
}

type fakeAttachments struct {
	deleted []string
	err     error
}

func (f *fakeAttachments) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.err
}

type fakeIndexer struct {
	enqueued []string
}

func (f *fakeIndexer) EnqueueReindex(noteID, _, _, _ string) {
	f.enqueued = append(f.enqueued, noteID)
}

func newTestService(repo Repository) (*Service, *fakeAttachments, *fakeIndexer) {
	att := &fakeAttachments{}
	idx := &fakeIndexer{}
	s := NewService(repo, att, idx, slog.Default())
	return s, att, idx
}

func strptr(s string) *string { return &s }

func TestSyncInsertsNewNote(t *testing.T) {
	repo := newFakeRepo()
	s, _, idx := newTestService(repo)

	updated := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	resp, err := s.Sync(context.Background(), "u1", Request{
		Notes: []NoteState{{ID: "n1", Title: "hello", Content: "body", UpdatedAt: updated}},
	})

	require.NoError(t, err)
	require.Contains(t, repo.notes, recordKey{"u1", "n1"})
	stored := repo.notes[recordKey{"u1", "n1"}]
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, updated, stored.UpdatedAt)
	require.NotNil(t, stored.SyncedAt)
	assert.Len(t, resp.Notes, 1)
	assert.Empty(t, resp.Rejected)
	assert.Equal(t, []string{"n1"}, idx.enqueued)
}

func TestSyncLastWriteWins(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	repo := newFakeRepo()
	repo.notes[recordKey{"u1", "1"}] = note.Note{ID: "1", UserID: "u1", Title: "old", UpdatedAt: t1, CreatedAt: t1}
	s, _, _ := newTestService(repo)

	_, err := s.Sync(context.Background(), "u1", Request{
		Notes: []NoteState{{ID: "1", Title: "new", UpdatedAt: t2}},
	})

	require.NoError(t, err)
	stored := repo.notes[recordKey{"u1", "1"}]
	assert.Equal(t, "new", stored.Title)
	assert.Equal(t, t2, stored.UpdatedAt)
	assert.Equal(t, t1, stored.CreatedAt, "creation time survives overwrites")
}

func TestSyncStaleUpdateIgnored(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	repo := newFakeRepo()
	repo.notes[recordKey{"u1", "1"}] = note.Note{ID: "1", UserID: "u1", Title: "server", UpdatedAt: t1}
	s, _, _ := newTestService(repo)

	_, err := s.Sync(context.Background(), "u1", Request{
		Notes: []NoteState{{ID: "1", Title: "stale", UpdatedAt: t1.Add(-time.Minute)}},
	})

	require.NoError(t, err)
	assert.Equal(t, "server", repo.notes[recordKey{"u1", "1"}].Title)
}

func TestSyncEqualTimestampsFavorServer(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	repo := newFakeRepo()
	repo.notes[recordKey{"u1", "1"}] = note.Note{ID: "1", UserID: "u1", Title: "server", UpdatedAt: t1}
	s, _, _ := newTestService(repo)

	_, err := s.Sync(context.Background(), "u1", Request{
		Notes: []NoteState{{ID: "1", Title: "client", UpdatedAt: t1}},
	})

	require.NoError(t, err)
	assert.Equal(t, "server", repo.notes[recordKey{"u1", "1"}].Title)
}

func TestSyncIsOwnerScoped(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	repo := newFakeRepo()
	repo.notes[recordKey{"u1", "shared"}] = note.Note{ID: "shared", UserID: "u1", Title: "u1 note", UpdatedAt: t1}
	s, _, _ := newTestService(repo)

	// Another owner reuses the same client-assigned id with a newer
	// timestamp. It must land as that owner's own row, never as an
	// overwrite of the first owner's.
	resp, err := s.Sync(context.Background(), "u2", Request{
		Notes: []NoteState{{ID: "shared", Title: "u2 note", UpdatedAt: t1.Add(time.Hour)}},
	})

	require.NoError(t, err)

	untouched := repo.notes[recordKey{"u1", "shared"}]
	assert.Equal(t, "u1 note", untouched.Title)
	assert.Equal(t, "u1", untouched.UserID)

	require.Contains(t, repo.notes, recordKey{"u2", "shared"})
	created := repo.notes[recordKey{"u2", "shared"}]
	assert.Equal(t, "u2 note", created.Title)
	assert.Equal(t, "u2", created.UserID)

	// The delta is owner-scoped too.
	require.Len(t, resp.Notes, 1)
	assert.Equal(t, "u2", resp.Notes[0].UserID)
}

func TestSyncUnknownDeletedNoteLeavesNoTombstone(t *testing.T) {
	repo := newFakeRepo()
	s, _, _ := newTestService(repo)

	resp, err := s.Sync(context.Background(), "u1", Request{
		Notes: []NoteState{{ID: "ghost", IsDeleted: true, UpdatedAt: time.Now()}},
	})

	require.NoError(t, err)
	assert.NotContains(t, repo.notes, recordKey{"u1", "ghost"})
	assert.Empty(t, resp.Notes)
	assert.Empty(t, resp.Rejected)
}

func TestSyncDeleteClearsAudioAttachment(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	repo := newFakeRepo()
	repo.notes[recordKey{"u1", "1"}] = note.Note{
		ID: "1", UserID: "u1", Title: "voice memo",
		AudioPath: strptr("audio/u1/1.m4a"), UpdatedAt: t1,
	}
	s, att, idx := newTestService(repo)

	_, err := s.Sync(context.Background(), "u1", Request{
		Notes: []NoteState{{ID: "1", Title: "voice memo", IsDeleted: true, UpdatedAt: t1.Add(time.Hour)}},
	})

	require.NoError(t, err)
	stored := repo.notes[recordKey{"u1", "1"}]
	assert.True(t, stored.IsDeleted)
	assert.Nil(t, stored.AudioPath)
	assert.Equal(t, []string{"audio/u1/1.m4a"}, att.deleted)
	assert.Empty(t, idx.enqueued, "tombstoned notes are not indexed")
}

func TestSyncAttachmentCleanupFailureIsSwallowed(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	repo := newFakeRepo()
	repo.notes[recordKey{"u1", "1"}] = note.Note{ID: "1", UserID: "u1", AudioPath: strptr("a/b"), UpdatedAt: t1}
	s, att, _ := newTestService(repo)
	att.err = errors.New("bucket unavailable")

	_, err := s.Sync(context.Background(), "u1", Request{
		Notes: []NoteState{{ID: "1", IsDeleted: true, UpdatedAt: t1.Add(time.Hour)}},
	})

	require.NoError(t, err)
	assert.True(t, repo.notes[recordKey{"u1", "1"}].IsDeleted)
}

func TestSyncRejectsInvalidEntriesAndContinues(t *testing.T) {
	repo := newFakeRepo()
	s, _, _ := newTestService(repo)

	updated := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	resp, err := s.Sync(context.Background(), "u1", Request{
		Notes: []NoteState{
			{ID: "", Title: "no id", UpdatedAt: updated},
			{ID: "ok", Title: "fine", UpdatedAt: updated},
		},
		Folders: []FolderState{
			{ID: "f1", Name: "", UpdatedAt: updated},
		},
	})

	require.NoError(t, err)
	require.Len(t, resp.Rejected, 2)
	assert.Equal(t, "folder", resp.Rejected[0].Kind)
	assert.Equal(t, "note", resp.Rejected[1].Kind)
	assert.Equal(t, 0, resp.Rejected[1].Index)
	assert.Contains(t, repo.notes, recordKey{"u1", "ok"})
}

func TestSyncNewFolderGetsDefaultColor(t *testing.T) {
	repo := newFakeRepo()
	s, _, _ := newTestService(repo)

	resp, err := s.Sync(context.Background(), "u1", Request{
		Folders: []FolderState{{ID: "9", Name: "Trip", UpdatedAt: time.Now().UTC()}},
	})

	require.NoError(t, err)
	require.Contains(t, repo.folders, recordKey{"u1", "9"})
	assert.Equal(t, folder.DefaultColor, repo.folders[recordKey{"u1", "9"}].Color)
	require.Len(t, resp.Folders, 1)
	assert.Equal(t, "Trip", resp.Folders[0].Name)
}

func TestSyncFolderDeleteReassignsNotes(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	repo := newFakeRepo()
	repo.folders[recordKey{"u1", "f1"}] = folder.Folder{ID: "f1", UserID: "u1", Name: "Work", UpdatedAt: t1}
	repo.notes[recordKey{"u1", "n1"}] = note.Note{ID: "n1", UserID: "u1", FolderID: strptr("f1"), UpdatedAt: t1}
	repo.notes[recordKey{"u1", "n2"}] = note.Note{ID: "n2", UserID: "u1", FolderID: strptr("other"), UpdatedAt: t1}
	s, _, _ := newTestService(repo)

	checkpoint := t1.Add(time.Minute)
	resp, err := s.Sync(context.Background(), "u1", Request{
		Folders:    []FolderState{{ID: "f1", Name: "Work", IsDeleted: true, UpdatedAt: t1.Add(time.Hour)}},
		LastSyncAt: &checkpoint,
	})

	require.NoError(t, err)
	assert.True(t, repo.folders[recordKey{"u1", "f1"}].IsDeleted)
	assert.Nil(t, repo.notes[recordKey{"u1", "n1"}].FolderID)
	assert.Equal(t, strptr("other"), repo.notes[recordKey{"u1", "n2"}].FolderID)

	// The reassigned note was stamped by the server and must ride the delta.
	require.Len(t, resp.Notes, 1)
	assert.Equal(t, "n1", resp.Notes[0].ID)
}

func TestSyncDeltaHonorsCheckpoint(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	repo := newFakeRepo()
	repo.notes[recordKey{"u1", "old"}] = note.Note{ID: "old", UserID: "u1", UpdatedAt: t1}
	repo.notes[recordKey{"u1", "fresh"}] = note.Note{ID: "fresh", UserID: "u1", UpdatedAt: t2}
	s, _, _ := newTestService(repo)

	checkpoint := t1.Add(time.Minute)
	resp, err := s.Sync(context.Background(), "u1", Request{LastSyncAt: &checkpoint})

	require.NoError(t, err)
	require.Len(t, resp.Notes, 1)
	assert.Equal(t, "fresh", resp.Notes[0].ID)
}

func TestSyncNilCheckpointReturnsEverything(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	repo := newFakeRepo()
	repo.notes[recordKey{"u1", "a"}] = note.Note{ID: "a", UserID: "u1", UpdatedAt: t1}
	repo.notes[recordKey{"u1", "b"}] = note.Note{ID: "b", UserID: "u1", UpdatedAt: t1, IsDeleted: true}
	repo.folders[recordKey{"u1", "f"}] = folder.Folder{ID: "f", UserID: "u1", UpdatedAt: t1}
	s, _, _ := newTestService(repo)

	resp, err := s.Sync(context.Background(), "u1", Request{})

	require.NoError(t, err)
	assert.Len(t, resp.Notes, 2, "tombstones are part of the full delta")
	assert.Len(t, resp.Folders, 1)
}

func TestSyncIsIdempotent(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	repo := newFakeRepo()
	s, _, _ := newTestService(repo)

	req := Request{
		Notes:   []NoteState{{ID: "n1", Title: "once", UpdatedAt: t1}},
		Folders: []FolderState{{ID: "f1", Name: "Docs", UpdatedAt: t1}},
	}

	_, err := s.Sync(context.Background(), "u1", req)
	require.NoError(t, err)
	firstNote := repo.notes[recordKey{"u1", "n1"}]
	firstFolder := repo.folders[recordKey{"u1", "f1"}]

	_, err = s.Sync(context.Background(), "u1", req)
	require.NoError(t, err)
	assert.Equal(t, firstNote, repo.notes[recordKey{"u1", "n1"}], "replaying the batch must not rewrite rows")
	assert.Equal(t, firstFolder, repo.folders[recordKey{"u1", "f1"}])
}

func TestSyncDuplicateIDsInBatchLastWriteWins(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	repo := newFakeRepo()
	s, _, _ := newTestService(repo)

	_, err := s.Sync(context.Background(), "u1", Request{
		Notes: []NoteState{
			{ID: "dup", Title: "newer", UpdatedAt: t2},
			{ID: "dup", Title: "older", UpdatedAt: t1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "newer", repo.notes[recordKey{"u1", "dup"}].Title)
}

func TestSyncStorageFailureAbortsCall(t *testing.T) {
	repo := newFakeRepo()
	repo.txErr = errors.New("connection reset")
	s, _, _ := newTestService(repo)

	_, err := s.Sync(context.Background(), "u1", Request{})
	require.Error(t, err)
}

func TestSyncUpdateReindexesNote(t *testing.T) {
	t1 := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	repo := newFakeRepo()
	repo.notes[recordKey{"u1", "1"}] = note.Note{ID: "1", UserID: "u1", Title: "old", Content: "text", UpdatedAt: t1}
	s, _, idx := newTestService(repo)

	_, err := s.Sync(context.Background(), "u1", Request{
		Notes: []NoteState{{ID: "1", Title: "renamed", Content: "text", UpdatedAt: t1.Add(time.Hour)}},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, idx.enqueued)
}
