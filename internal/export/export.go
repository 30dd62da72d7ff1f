// Package export serializes a session record into the two downloadable
// artifacts: a lossless structured JSON document (screenshots included)
// and an analysis-ready single-row CSV under a fixed, versioned column
// schema.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/record"
)

// filePrefix names every export artifact after the study.
const filePrefix = "trust-ai-study"

// JSONFilename returns the download name for the structured export.
func JSONFilename(rec *record.SessionRecord) string {
	return fmt.Sprintf("%s-%s.json", filePrefix, rec.ParticipantID)
}

// CSVFilename returns the download name for the tabular export.
func CSVFilename(rec *record.SessionRecord) string {
	return fmt.Sprintf("%s-%s-ANALYSIS.csv", filePrefix, rec.ParticipantID)
}

// WriteJSON writes the complete record as indented JSON. The output is
// a lossless structural serialization suitable for archival, including
// the screenshot payloads.
func WriteJSON(w io.Writer, rec *record.SessionRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("encoding session record: %w", err)
	}
	return nil
}

// WriteJSONGz writes the structured export gzip-compressed. Screenshot
// payloads dominate the record size, so the researcher-facing archive
// copy is offered compressed.
func WriteJSONGz(w io.Writer, rec *record.SessionRecord) error {
	zw := gzip.NewWriter(w)
	if err := WriteJSON(zw, rec); err != nil {
		zw.Close() //nolint:errcheck
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing export: %w", err)
	}
	return nil
}
