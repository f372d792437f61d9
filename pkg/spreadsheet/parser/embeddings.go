package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/richardlehane/mscfb"
	"github.com/richardlehane/msoleps"

	"github.com/agentjill/umya-spreadsheet/pkg/spreadsheet/drawing"
)

// InspectEmbedding describes the embedded file behind an OLE object. Binary
// (.bin) embeddings are opened as compound files: their streams are listed
// and property-set streams are decoded.
func InspectEmbedding(partPath string, data []byte) (*drawing.Embedding, error) {
	emb := &drawing.Embedding{
		Part:      partPath,
		Extension: strings.ToLower(strings.TrimPrefix(path.Ext(partPath), ".")),
	}
	if emb.Extension != "bin" {
		return emb, nil
	}

	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return emb, fmt.Errorf("open compound file %s: %w", partPath, err)
	}
	for {
		entry, err := doc.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return emb, fmt.Errorf("walk compound file %s: %w", partPath, err)
		}
		if entry.Size == 0 {
			continue
		}
		name := strings.Join(append(append([]string{}, entry.Path...), entry.Name), "/")
		emb.Streams = append(emb.Streams, name)

		if !msoleps.IsMSOLEPS(entry.Initial) {
			continue
		}
		props, err := msoleps.NewFrom(entry)
		if err != nil {
			continue
		}
		for _, prop := range props.Property {
			if prop.Name == "" || prop.T == nil {
				continue
			}
			if emb.Properties == nil {
				emb.Properties = make(map[string]string)
			}
			emb.Properties[prop.Name] = prop.String()
		}
	}
	return emb, nil
}
