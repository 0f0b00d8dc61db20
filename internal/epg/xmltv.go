// SPDX-License-Identifier: MIT

package epg

import (
	"bufio"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"

	"github.com/google/renameio/v2"

	"github.com/ManuGH/epgrab/internal/channels"
	xglog "github.com/ManuGH/epgrab/internal/log"
)

// DefaultLanguage is the lang attribute of every display-name, title and desc.
const DefaultLanguage = "zh"

// Options controls document rendering.
type Options struct {
	Language  string
	Generator string
}

func (o Options) withDefaults() Options {
	if o.Language == "" {
		o.Language = DefaultLanguage
	}
	if o.Generator == "" {
		o.Generator = DefaultGenerator
	}
	return o
}

// WriteResult reports the outcome of Serialize. Written is false when the
// schedule was empty and no file was touched.
type WriteResult struct {
	Written    bool
	Path       string
	Channels   int
	Programmes int
	Bytes      int
}

// Render marshals tv with two-space indentation behind an XML declaration.
// The output never contains blank lines and ends with a newline.
func Render(tv *TV) ([]byte, error) {
	out, err := xml.MarshalIndent(tv, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal xmltv: %w", err)
	}
	doc := make([]byte, 0, len(xml.Header)+len(out)+1)
	doc = append(doc, xml.Header...)
	doc = append(doc, out...)
	return stripBlankLines(doc), nil
}

// stripBlankLines drops every empty or whitespace-only line.
func stripBlankLines(in []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(in) + 1)
	sc := bufio.NewScanner(bytes.NewReader(in))
	sc.Buffer(make([]byte, 0, 64*1024), len(in)+1)
	for sc.Scan() {
		line := sc.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		buf.Write(bytes.TrimRight(line, "\r"))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Serialize renders chans and schedule and atomically replaces the file at
// path. An empty schedule produces no document and performs no file I/O.
func Serialize(ctx context.Context, path string, chans []channels.Channel, schedule Schedule, opts Options) (WriteResult, error) {
	logger := xglog.WithComponentFromContext(ctx, "xmltv")
	res := WriteResult{Path: path, Channels: len(chans), Programmes: len(schedule)}

	if len(schedule) == 0 {
		logger.Warn().
			Str(xglog.FieldEvent, "xmltv.skipped").
			Str(xglog.FieldPath, path).
			Int(xglog.FieldChannels, len(chans)).
			Msg("schedule is empty, no XMLTV document produced")
		return res, nil
	}

	data, err := Render(GenerateXMLTV(chans, schedule, opts))
	if err != nil {
		return res, err
	}
	if err := writeAtomic(ctx, path, data); err != nil {
		logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "xmltv.failed").
			Str(xglog.FieldPath, path).
			Msg("XMLTV write failed")
		return res, err
	}

	res.Written = true
	res.Bytes = len(data)
	logger.Info().
		Str(xglog.FieldEvent, "xmltv.written").
		Str(xglog.FieldPath, path).
		Int(xglog.FieldChannels, res.Channels).
		Int(xglog.FieldProgrammes, res.Programmes).
		Int("bytes", res.Bytes).
		Msg("XMLTV generated")
	return res, nil
}

// writeAtomic writes data with full durability guarantees using renameio:
// temp file, fsync, rename over any existing file.
func writeAtomic(ctx context.Context, path string, data []byte) error {
	logger := xglog.FromContext(ctx)

	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending XMLTV file: %w", err)
	}
	defer func() {
		// No-op once committed.
		if err := pendingFile.Cleanup(); err != nil {
			logger.Debug().Err(err).Msg("cleanup pending XMLTV file")
		}
	}()

	if _, err := pendingFile.Write(data); err != nil {
		return fmt.Errorf("write XMLTV data: %w", err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace XMLTV file: %w", err)
	}
	return nil
}
