package dispatch_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/scribe/pkg/adapters/fs"
	"github.com/aretw0/scribe/pkg/audio"
	"github.com/aretw0/scribe/pkg/core"
	"github.com/aretw0/scribe/pkg/dispatch"
)

type fakeAudio struct {
	mu      sync.Mutex
	path    string
	playing bool
	failErr error
}

func (a *fakeAudio) Play(path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failErr != nil {
		return &audio.StartError{Path: path, Err: a.failErr}
	}
	a.path, a.playing = path, true
	return nil
}

func (a *fakeAudio) IsPlaying() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playing
}

func (a *fakeAudio) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.playing = false
}

func setup(t *testing.T) (*dispatch.Dispatcher, *fakeAudio, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "user_data")
	svc := core.NewService(fs.NewRepository(fs.Config{Path: dir}))
	player := &fakeAudio{}
	return dispatch.New(svc, player, nil), player, dir
}

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestDispatch_DocumentScenario(t *testing.T) {
	d, _, dir := setup(t)
	ctx := context.Background()

	folder, err := d.Dispatch(ctx, dispatch.CmdGetUserFolder, nil)
	require.NoError(t, err)
	assert.Equal(t, dir, folder)

	doc := map[string]any{"name": "draft1", "text": "hello", "font": "Serif", "font_size": 14, "theme": "light"}
	msg, err := d.Dispatch(ctx, dispatch.CmdSaveFile, raw(t, map[string]any{"file": doc}))
	require.NoError(t, err)
	assert.Equal(t, "File 'draft1' saved successfully!", msg)

	loaded, err := d.Dispatch(ctx, dispatch.CmdLoadFile, raw(t, map[string]string{"name": "draft1"}))
	require.NoError(t, err)
	assert.Equal(t, core.WritingDocument{Name: "draft1", Text: "hello", Font: "Serif", FontSize: 14, Theme: "light"}, loaded)

	names, err := d.Dispatch(ctx, dispatch.CmdListFiles, nil)
	require.NoError(t, err)
	assert.Contains(t, names, "draft1")

	msg, err = d.Dispatch(ctx, dispatch.CmdDeleteFile, raw(t, map[string]string{"name": "draft1"}))
	require.NoError(t, err)
	assert.Equal(t, "File 'draft1' deleted successfully!", msg)

	_, err = d.Dispatch(ctx, dispatch.CmdLoadFile, raw(t, map[string]string{"name": "draft1"}))
	require.Error(t, err)
	assert.Equal(t, "File not found", err.Error())
}

func TestDispatch_AudioCommands(t *testing.T) {
	d, player, _ := setup(t)
	ctx := context.Background()

	playing, err := d.Dispatch(ctx, dispatch.CmdIsAudioPlaying, nil)
	require.NoError(t, err)
	assert.Equal(t, false, playing)

	result, err := d.Dispatch(ctx, dispatch.CmdPlayAudio, raw(t, map[string]string{"path": "/music/rain.mp3"}))
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.Equal(t, "/music/rain.mp3", player.path)

	playing, err = d.Dispatch(ctx, dispatch.CmdIsAudioPlaying, nil)
	require.NoError(t, err)
	assert.Equal(t, true, playing)

	_, err = d.Dispatch(ctx, dispatch.CmdStopAudio, nil)
	require.NoError(t, err)
	assert.False(t, player.IsPlaying())

	player.failErr = errors.New("executable file not found")
	_, err = d.Dispatch(ctx, dispatch.CmdPlayAudio, raw(t, map[string]string{"path": "x.mp3"}))
	require.Error(t, err)
	assert.Equal(t, "Failed to play audio: executable file not found", err.Error())
}

func TestDispatch_ArgumentErrors(t *testing.T) {
	d, _, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		cmd  string
		args json.RawMessage
		want string
	}{
		{dispatch.CmdLoadFile, nil, "missing arguments"},
		{dispatch.CmdLoadFile, json.RawMessage(`{}`), "missing argument: name"},
		{dispatch.CmdDeleteFile, json.RawMessage(`{"name": 3}`), "invalid arguments"},
		{dispatch.CmdSaveFile, json.RawMessage(`{}`), "missing argument: file"},
		{dispatch.CmdSaveFile, json.RawMessage(`{"file":{"name":"old","text":"hi"}}`), "missing field `font`"},
		{dispatch.CmdPlayAudio, json.RawMessage(`{}`), "missing argument: path"},
		{"format_disk", nil, "unknown command: format_disk"},
	}
	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			_, err := d.Dispatch(ctx, tt.cmd, tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestDispatch_Commands(t *testing.T) {
	d, _, _ := setup(t)
	assert.Equal(t, []string{
		"backend_state", "delete_file", "get_user_folder", "is_audio_playing",
		"list_files", "load_file", "play_audio", "save_file", "stop_audio",
	}, d.Commands())
}

func TestDispatch_BackendState(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "user_data")
	svc := core.NewService(fs.NewRepository(fs.Config{Path: dir}))
	ctrl := audio.NewController(audio.PlayerFor("darwin"))
	d := dispatch.New(svc, ctrl, nil)

	result, err := d.Dispatch(context.Background(), dispatch.CmdBackendState, nil)
	require.NoError(t, err)

	state := result.(map[string]any)
	assert.Contains(t, state, "service")
	assert.Contains(t, state, "audio-controller")
	assert.Equal(t, "afplay", state["audio-controller"].(audio.ControllerState).Command)
}

func TestServe(t *testing.T) {
	d, _, _ := setup(t)

	input := strings.Join([]string{
		`{"id":"1","cmd":"save_file","args":{"file":{"name":"draft1","text":"hello","font":"Serif","font_size":14,"theme":"light"}}}`,
		`{"id":"2","cmd":"list_files"}`,
		``,
		`not json`,
		`{"cmd":"is_audio_playing"}`,
		`{"id":"5","cmd":"load_file","args":{"name":"missing"}}`,
	}, "\n")

	var out bytes.Buffer
	require.NoError(t, d.Serve(context.Background(), strings.NewReader(input), &out))

	var responses []dispatch.Response
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp dispatch.Response
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &resp))
		responses = append(responses, resp)
	}
	require.Len(t, responses, 5)

	assert.Equal(t, "1", responses[0].ID)
	assert.True(t, responses[0].OK)
	assert.Equal(t, "File 'draft1' saved successfully!", responses[0].Result)

	assert.Equal(t, "2", responses[1].ID)
	assert.Equal(t, []any{"draft1"}, responses[1].Result)

	assert.False(t, responses[2].OK)
	assert.Contains(t, responses[2].Error, "malformed request")

	assert.NotEmpty(t, responses[3].ID, "missing ids are generated")
	assert.True(t, responses[3].OK)
	assert.Equal(t, false, responses[3].Result)

	assert.Equal(t, "5", responses[4].ID)
	assert.False(t, responses[4].OK)
	assert.Equal(t, "File not found", responses[4].Error)
}

func TestServe_StopsWhenCancelled(t *testing.T) {
	d, _, _ := setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := d.Serve(ctx, strings.NewReader(`{"cmd":"list_files"}`+"\n"), &out)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, out.Len())
}
