package core

import (
	"bytes"
	"context"
	"fmt"

	"ensemblecore/internal/blob"
)

// ExportConfigText encodes the registry as configuration text and archives
// it under key in the blob store. The blob is created with a text/plain
// content type and a metadata entry counting the registered nodes.
func (r *Registry) ExportConfigText(ctx context.Context, store blob.Store, key string) (blob.Info, error) {
	done := r.begin("export_config_text")
	info, err := r.exportConfigText(ctx, store, key)
	done(err)
	return info, err
}

func (r *Registry) exportConfigText(ctx context.Context, store blob.Store, key string) (blob.Info, error) {
	var buf bytes.Buffer
	if err := r.encodeConfig(&buf); err != nil {
		return blob.Info{}, err
	}
	info, err := store.Put(ctx, key, &buf, blob.PutOptions{
		ContentType: "text/plain; charset=utf-8",
		Metadata:    map[string]string{"node_count": fmt.Sprintf("%d", r.Len())},
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("archive config text: %w", err)
	}
	return info, nil
}
