package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/aretw0/scribe/pkg/adapters/fs"
	"github.com/aretw0/scribe/pkg/core"
)

func setupRepo(t *testing.T) (*fs.Repository, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "user_data")
	repo := fs.NewRepository(fs.Config{Path: dir})
	require.NoError(t, repo.Initialize(context.Background()))
	return repo, dir
}

func sampleDoc(name string) core.WritingDocument {
	return core.WritingDocument{Name: name, Text: "hello", Font: "Serif", FontSize: 14, Theme: "light"}
}

func TestRepository_Initialize(t *testing.T) {
	t.Run("Creates Missing Directories", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b", "user_data")
		repo := fs.NewRepository(fs.Config{Path: dir})

		require.NoError(t, repo.Initialize(context.Background()))
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("MustExist Fails For Missing Directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "missing")
		repo := fs.NewRepository(fs.Config{Path: dir, MustExist: true})

		err := repo.Initialize(context.Background())
		assert.ErrorIs(t, err, core.ErrStorageUnavailable)
	})

	t.Run("Unconfigured Path Is Unavailable", func(t *testing.T) {
		repo := fs.NewRepository(fs.Config{})
		_, err := repo.Location(context.Background())
		assert.ErrorIs(t, err, core.ErrStorageUnavailable)
	})

	t.Run("Path Blocked By File Is Unavailable", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
		repo := fs.NewRepository(fs.Config{Path: filepath.Join(blocker, "user_data")})

		_, err := repo.List(context.Background())
		assert.ErrorIs(t, err, core.ErrStorageUnavailable)
	})
}

func TestRepository_Location(t *testing.T) {
	repo, dir := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, os.RemoveAll(dir))

	loc, err := repo.Location(ctx)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(loc))
	assert.DirExists(t, dir, "Location should recreate a removed directory")
}

func TestRepository_SaveWritesJSONFile(t *testing.T) {
	repo, dir := setupRepo(t)

	require.NoError(t, repo.Save(context.Background(), sampleDoc("draft1")))

	data, err := os.ReadFile(filepath.Join(dir, "draft1.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"draft1","text":"hello","font":"Serif","font_size":14,"theme":"light"}`, string(data))
}

func TestRepository_Scenario(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleDoc("draft1")))

	got, err := repo.Get(ctx, "draft1")
	require.NoError(t, err)
	assert.Equal(t, sampleDoc("draft1"), got)

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "draft1")

	require.NoError(t, repo.Delete(ctx, "draft1"))

	_, err = repo.Get(ctx, "draft1")
	require.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, "File not found", err.Error())

	err = repo.Delete(ctx, "draft1")
	assert.ErrorIs(t, err, core.ErrNotFound, "second delete should also be not found")
}

func TestRepository_OverwriteReplacesAllFields(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	first := sampleDoc("essay")
	second := core.WritingDocument{Name: "essay", Text: "rewritten", Font: "Mono", FontSize: 18, Theme: "dark"}

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.Get(ctx, "essay")
	require.NoError(t, err)
	assert.Equal(t, second, got)

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"essay"}, names)
}

func TestRepository_ListFiltersNonDocuments(t *testing.T) {
	repo, dir := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleDoc("kept")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("stray"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".DS_Store"), []byte{}, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, fs.TempFilePrefix+"123"), []byte("{}"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.json"), 0755))

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, names)
}

func TestRepository_ListIncludesDotNames(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	for _, name := range []string{".hidden", fs.TempFilePrefix + "notes", "a.json"} {
		require.NoError(t, repo.Save(ctx, sampleDoc(name)))
		_, err := repo.Get(ctx, name)
		require.NoError(t, err)
	}

	names, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{".hidden", fs.TempFilePrefix + "notes", "a.json"}, names)
}

func TestRepository_ListEmpty(t *testing.T) {
	repo, _ := setupRepo(t)

	names, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestRepository_GetCorrupted(t *testing.T) {
	cases := map[string]string{
		"invalid json":    `{"name": "broken"`,
		"schema drift":    `{"name":"old","body":"legacy field","font":"Serif","font_size":12,"theme":"light"}`,
		"wrong type":      `{"name":"typed","text":"x","font":"Serif","font_size":"big","theme":"light"}`,
		"missing name":    `{"text":"x","font":"Serif","font_size":12,"theme":"light"}`,
		"trailing data":   `{"name":"twice","text":"","font":"","font_size":1,"theme":""}{}`,
		"missing fields":  `{"name":"old","text":"hi"}`,
		"null field":      `{"name":"nul","text":"x","font":null,"font_size":12,"theme":"light"}`,
		"zero font size":  `{"name":"tiny","text":"x","font":"Serif","font_size":0,"theme":"light"}`,
		"bad stored name": `{"name":"../up","text":"x","font":"Serif","font_size":12,"theme":"light"}`,
	}

	for label, content := range cases {
		t.Run(label, func(t *testing.T) {
			repo, dir := setupRepo(t)
			require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte(content), 0644))

			_, err := repo.Get(context.Background(), "bad")
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrDeserialization)
			assert.False(t, errors.Is(err, core.ErrNotFound))
		})
	}
}

func TestRepository_ReadError(t *testing.T) {
	repo, dir := setupRepo(t)
	// A directory where a document file is expected cannot be read as a file.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "odd.json"), 0755))

	_, err := repo.Get(context.Background(), "odd")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrRead)
}

func TestRepository_WriteError(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user/platform")
	}
	repo, dir := setupRepo(t)
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0755) })

	err := repo.Save(context.Background(), sampleDoc("locked"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrWrite)
}

func TestRepository_RejectsTraversal(t *testing.T) {
	repo, dir := setupRepo(t)
	ctx := context.Background()

	err := repo.Save(ctx, sampleDoc("../escape"))
	assert.ErrorIs(t, err, core.ErrInvalidName)
	_, statErr := os.Stat(filepath.Join(filepath.Dir(dir), "escape.json"))
	assert.True(t, os.IsNotExist(statErr), "no file may be written outside the storage directory")

	_, err = repo.Get(ctx, "a/b")
	assert.ErrorIs(t, err, core.ErrInvalidName)
	assert.ErrorIs(t, repo.Delete(ctx, ".."), core.ErrInvalidName)
}

func genDocument(t *rapid.T, name string) core.WritingDocument {
	return core.WritingDocument{
		Name:     name,
		Text:     rapid.String().Draw(t, "text"),
		Font:     rapid.SampledFrom([]string{"Serif", "Sans", "Mono", "Georgia"}).Draw(t, "font"),
		FontSize: rapid.Uint32Range(1, 256).Draw(t, "font_size"),
		Theme:    rapid.SampledFrom([]string{"light", "dark", "sepia"}).Draw(t, "theme"),
	}
}

var nameGen = rapid.StringMatching(`[a-zA-Z0-9_-][a-zA-Z0-9 _.-]{0,23}`)

func TestRepository_RoundTripProperty(t *testing.T) {
	base := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		dir, err := os.MkdirTemp(base, "prop-")
		require.NoError(rt, err)
		repo := fs.NewRepository(fs.Config{Path: dir})
		ctx := context.Background()

		name := nameGen.Filter(func(s string) bool { return s != "." && s != ".." }).Draw(rt, "name")
		doc := genDocument(rt, name)

		require.NoError(rt, repo.Save(ctx, doc))
		got, err := repo.Get(ctx, name)
		require.NoError(rt, err)
		assert.Equal(rt, doc, got)
	})
}

func TestRepository_OverwriteProperty(t *testing.T) {
	base := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		dir, err := os.MkdirTemp(base, "prop-")
		require.NoError(rt, err)
		repo := fs.NewRepository(fs.Config{Path: dir})
		ctx := context.Background()

		first := genDocument(rt, "same")
		second := genDocument(rt, "same")

		require.NoError(rt, repo.Save(ctx, first))
		require.NoError(rt, repo.Save(ctx, second))

		got, err := repo.Get(ctx, "same")
		require.NoError(rt, err)
		assert.Equal(rt, second, got)
	})
}

func TestRepository_ListSetProperty(t *testing.T) {
	base := t.TempDir()
	rapid.Check(t, func(rt *rapid.T) {
		dir, err := os.MkdirTemp(base, "prop-")
		require.NoError(rt, err)
		repo := fs.NewRepository(fs.Config{Path: dir})
		ctx := context.Background()

		names := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z0-9]{1,12}`), 0, 12, rapid.ID[string]).Draw(rt, "names")
		order := rapid.Permutation(names).Draw(rt, "order")
		for _, name := range order {
			require.NoError(rt, repo.Save(ctx, sampleDoc(name)))
		}

		got, err := repo.List(ctx)
		require.NoError(rt, err)

		want := append([]string{}, names...)
		sort.Strings(want)
		assert.Equal(rt, want, got)
	})
}
