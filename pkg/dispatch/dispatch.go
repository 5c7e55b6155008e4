// Package dispatch is the request/response boundary between the front end and
// the backend. Every command takes JSON arguments and yields either a result
// or a flat error string.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/aretw0/introspection"

	"github.com/aretw0/scribe/pkg/core"
)

// Command names understood by the dispatcher.
const (
	CmdGetUserFolder  = "get_user_folder"
	CmdSaveFile       = "save_file"
	CmdLoadFile       = "load_file"
	CmdListFiles      = "list_files"
	CmdDeleteFile     = "delete_file"
	CmdPlayAudio      = "play_audio"
	CmdIsAudioPlaying = "is_audio_playing"
	CmdStopAudio      = "stop_audio"
	CmdBackendState   = "backend_state"
)

// Documents is the document use-case surface (implemented by core.Service).
type Documents interface {
	UserFolder(ctx context.Context) (string, error)
	SaveDocument(ctx context.Context, doc core.WritingDocument) (string, error)
	GetDocument(ctx context.Context, name string) (core.WritingDocument, error)
	ListDocuments(ctx context.Context) ([]string, error)
	DeleteDocument(ctx context.Context, name string) (string, error)
}

// Audio is the playback surface (implemented by audio.Controller).
type Audio interface {
	Play(path string) error
	IsPlaying() bool
	Stop()
}

// Handler runs one command.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Dispatcher routes command names to handlers.
type Dispatcher struct {
	docs     Documents
	audio    Audio
	logger   *slog.Logger
	handlers map[string]Handler
}

// New creates a dispatcher with every backend command registered.
func New(docs Documents, player Audio, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d := &Dispatcher{
		docs:   docs,
		audio:  player,
		logger: logger,
	}
	d.handlers = map[string]Handler{
		CmdGetUserFolder:  d.getUserFolder,
		CmdSaveFile:       d.saveFile,
		CmdLoadFile:       d.loadFile,
		CmdListFiles:      d.listFiles,
		CmdDeleteFile:     d.deleteFile,
		CmdPlayAudio:      d.playAudio,
		CmdIsAudioPlaying: d.isAudioPlaying,
		CmdStopAudio:      d.stopAudio,
		CmdBackendState:   d.backendState,
	}
	return d
}

// Commands lists the registered command names.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the named command.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd string, args json.RawMessage) (any, error) {
	h, ok := d.handlers[cmd]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", cmd)
	}
	result, err := h(ctx, args)
	if err != nil {
		d.logger.Debug("command failed", "cmd", cmd, "error", err)
		return nil, err
	}
	return result, nil
}

func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return errors.New("missing arguments")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func (d *Dispatcher) getUserFolder(ctx context.Context, _ json.RawMessage) (any, error) {
	return d.docs.UserFolder(ctx)
}

func (d *Dispatcher) saveFile(ctx context.Context, args json.RawMessage) (any, error) {
	var in struct {
		File *core.WritingDocument `json:"file"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.File == nil {
		return nil, errors.New("missing argument: file")
	}
	return d.docs.SaveDocument(ctx, *in.File)
}

type nameArgs struct {
	Name *string `json:"name"`
}

func (a nameArgs) value() (string, error) {
	if a.Name == nil {
		return "", errors.New("missing argument: name")
	}
	return *a.Name, nil
}

func (d *Dispatcher) loadFile(ctx context.Context, args json.RawMessage) (any, error) {
	var in nameArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	name, err := in.value()
	if err != nil {
		return nil, err
	}
	return d.docs.GetDocument(ctx, name)
}

func (d *Dispatcher) listFiles(ctx context.Context, _ json.RawMessage) (any, error) {
	return d.docs.ListDocuments(ctx)
}

func (d *Dispatcher) deleteFile(ctx context.Context, args json.RawMessage) (any, error) {
	var in nameArgs
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	name, err := in.value()
	if err != nil {
		return nil, err
	}
	return d.docs.DeleteDocument(ctx, name)
}

func (d *Dispatcher) playAudio(_ context.Context, args json.RawMessage) (any, error) {
	var in struct {
		Path *string `json:"path"`
	}
	if err := decodeArgs(args, &in); err != nil {
		return nil, err
	}
	if in.Path == nil {
		return nil, errors.New("missing argument: path")
	}
	return nil, d.audio.Play(*in.Path)
}

func (d *Dispatcher) isAudioPlaying(context.Context, json.RawMessage) (any, error) {
	return d.audio.IsPlaying(), nil
}

func (d *Dispatcher) stopAudio(context.Context, json.RawMessage) (any, error) {
	d.audio.Stop()
	return nil, nil
}

func (d *Dispatcher) backendState(context.Context, json.RawMessage) (any, error) {
	state := make(map[string]any, 2)
	for _, c := range []any{d.docs, d.audio} {
		intro, ok := c.(introspection.Introspectable)
		if !ok {
			continue
		}
		key := fmt.Sprintf("%T", c)
		if comp, ok := c.(introspection.Component); ok {
			key = comp.ComponentType()
		}
		state[key] = intro.State()
	}
	return state, nil
}
