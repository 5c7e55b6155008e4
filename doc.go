// Package scribe is the Composition Root of the writing application backend.
//
// It connects the core document use cases with the filesystem adapter and
// the audio controller using the Hexagonal Architecture pattern. The GUI
// shell talks to the backend through the command boundary in pkg/dispatch.
//
// Features:
//
//   - **Document Store**: one JSON file per document under the application
//     data directory, written atomically.
//   - **Audio Controller**: at most one platform player process at a time.
//   - **Watch**: change events for documents edited outside the application.
//
// Usage:
//
//	svc, err := scribe.New(scribe.WithLogger(logger))
//	msg, err := svc.SaveDocument(ctx, core.WritingDocument{Name: "draft", FontSize: 12})
//
//	player := scribe.NewAudio()
//	defer player.Close()
//	err = player.Play("/music/rain.mp3")
package scribe
