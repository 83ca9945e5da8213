package core

import (
	"context"
	"fmt"

	"ensemblecore/pkg/domain"
)

// ExportSnapshot copies the registry definition state into a serializable
// snapshot. Records are sorted by key so successive exports of the same
// state are byte-identical once encoded.
func (r *Registry) ExportSnapshot() Snapshot {
	done := r.begin("export_snapshot")
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := Snapshot{TagFormat: r.tagFormat}
	for _, key := range r.keysByKindLocked(KindGenKW) {
		node := r.nodes[key]
		genKW, _ := node.GenKWConfig()
		snap.GenKW = append(snap.GenKW, domain.GenKWRecord{
			NodeRecord:      nodeRecord(node),
			TemplateFile:    genKW.TemplateFile(),
			OutputFile:      genKW.OutputFile(),
			ParameterFile:   genKW.ParameterFile(),
			MinStdFile:      genKW.MinStdFile(),
			InitFilePattern: genKW.InitFilePattern(),
		})
	}
	for _, key := range r.keysByKindLocked(KindField) {
		node := r.nodes[key]
		field, _ := node.FieldConfig()
		truncation, minValue, maxValue := field.Truncation()
		initTransform, inputTransform, outputTransform := field.Transforms()
		snap.Fields = append(snap.Fields, domain.FieldRecord{
			NodeRecord:      nodeRecord(node),
			Usage:           field.Usage().String(),
			Truncation:      int(truncation),
			MinValue:        minValue,
			MaxValue:        maxValue,
			OutputFile:      field.OutputFile(),
			InputFile:       field.InputFile(),
			InitFilePattern: field.InitFilePattern(),
			MinStdFile:      field.MinStdFile(),
			InitTransform:   initTransform,
			InputTransform:  inputTransform,
			OutputTransform: outputTransform,
		})
	}
	for _, key := range r.keysByKindLocked(KindGenData) {
		node := r.nodes[key]
		genData, _ := node.GenDataConfig()
		inputFormat, outputFormat := genData.Formats()
		snap.GenData = append(snap.GenData, domain.GenDataRecord{
			NodeRecord:      nodeRecord(node),
			InputFormat:     inputFormat.String(),
			OutputFormat:    outputFormat.String(),
			InitFilePattern: genData.InitFilePattern(),
			TemplateFile:    genData.TemplateFile(),
			DataKey:         genData.DataKey(),
			OutputFile:      genData.OutputFile(),
			ResultFile:      genData.ResultFile(),
			MinStdFile:      genData.MinStdFile(),
		})
	}
	for _, key := range r.keysByKindLocked(KindSurface) {
		node := r.nodes[key]
		surface, _ := node.SurfaceConfig()
		snap.Surfaces = append(snap.Surfaces, domain.SurfaceRecord{
			NodeRecord:      nodeRecord(node),
			BaseSurfaceFile: surface.BaseSurfaceFile(),
			InitFilePattern: surface.InitFilePattern(),
			OutputFile:      surface.OutputFile(),
			MinStdFile:      surface.MinStdFile(),
		})
	}
	for _, key := range r.keysByKindLocked(KindSummary) {
		node := r.nodes[key]
		summary, _ := node.SummaryConfig()
		snap.Summaries = append(snap.Summaries, domain.SummaryRecord{
			NodeRecord:     nodeRecord(node),
			LoadFailPolicy: summary.LoadFailPolicy().String(),
		})
	}
	for _, key := range r.keysByKindLocked(KindContainer) {
		node := r.nodes[key]
		container, _ := node.ContainerConfig()
		snap.Containers = append(snap.Containers, domain.ContainerRecord{
			NodeRecord: nodeRecord(node),
			ChildKeys:  container.ChildKeys(),
		})
	}
	for _, key := range r.keysByKindLocked(KindStatic) {
		snap.Statics = append(snap.Statics, domain.StaticRecord{
			NodeRecord: nodeRecord(r.nodes[key]),
		})
	}
	done(nil)
	return snap
}

func nodeRecord(node *ConfigNode) domain.NodeRecord {
	return domain.NodeRecord{
		Key:             node.Key(),
		ObservationKeys: node.ObservationKeys(),
		Internalize:     node.ShouldInternalize(),
	}
}

// ImportSnapshot rebuilds registry state from a snapshot. Keys already
// present in the registry cause a duplicate-key error, so imports normally
// target a fresh registry. The grid is required only when the snapshot
// carries field records; transform names are re-resolved against the
// registry's own table.
func (r *Registry) ImportSnapshot(snap Snapshot, grid Grid) error {
	done := r.begin("import_snapshot")
	err := r.importSnapshot(snap, grid)
	done(err)
	return err
}

func (r *Registry) importSnapshot(snap Snapshot, grid Grid) error {
	if snap.TagFormat != "" {
		r.SetTagFormat(snap.TagFormat)
	}
	for _, rec := range snap.GenKW {
		node, err := r.AddGenKW(rec.Key)
		if err != nil {
			return err
		}
		if err := node.UpdateGenKW(rec.TemplateFile, rec.OutputFile, rec.ParameterFile, rec.MinStdFile, rec.InitFilePattern); err != nil {
			return err
		}
		applyNodeRecord(node, rec.NodeRecord)
	}
	for _, rec := range snap.Fields {
		if err := r.importField(rec, grid); err != nil {
			return err
		}
	}
	for _, rec := range snap.GenData {
		node, err := r.AddGenData(rec.Key)
		if err != nil {
			return err
		}
		inputFormat, err := domain.ParseGenDataFormat(rec.InputFormat)
		if err != nil {
			return err
		}
		outputFormat, err := domain.ParseGenDataFormat(rec.OutputFormat)
		if err != nil {
			return err
		}
		if err := node.UpdateGenData(inputFormat, outputFormat, rec.InitFilePattern, rec.TemplateFile, rec.DataKey, rec.OutputFile, rec.ResultFile, rec.MinStdFile); err != nil {
			return err
		}
		applyNodeRecord(node, rec.NodeRecord)
	}
	for _, rec := range snap.Surfaces {
		node, err := r.AddSurface(rec.Key)
		if err != nil {
			return err
		}
		if err := node.UpdateSurface(rec.BaseSurfaceFile, rec.InitFilePattern, rec.OutputFile, rec.MinStdFile); err != nil {
			return err
		}
		applyNodeRecord(node, rec.NodeRecord)
	}
	for _, rec := range snap.Summaries {
		policy, err := domain.ParseLoadFailPolicy(rec.LoadFailPolicy)
		if err != nil {
			return err
		}
		node := domain.NewConfigNode(rec.Key, ClassDynamicState, domain.NewSummaryConfig(rec.Key, policy))
		if err := r.AddNode(node); err != nil {
			return err
		}
		applyNodeRecord(node, rec.NodeRecord)
	}
	for _, rec := range snap.Containers {
		node, err := r.AddContainer(rec.Key)
		if err != nil {
			return err
		}
		for _, childKey := range rec.ChildKeys {
			child, err := r.Node(childKey)
			if err != nil {
				return err
			}
			if err := node.AppendContainerChild(child.Key()); err != nil {
				return err
			}
		}
		applyNodeRecord(node, rec.NodeRecord)
	}
	for _, rec := range snap.Statics {
		node := domain.NewConfigNode(rec.Key, ClassStaticState, domain.NewStaticConfig(rec.Key))
		if err := r.AddNode(node); err != nil {
			return err
		}
		applyNodeRecord(node, rec.NodeRecord)
	}
	return nil
}

func (r *Registry) importField(rec domain.FieldRecord, grid Grid) error {
	usage, err := domain.ParseFieldUsage(rec.Usage)
	if err != nil {
		return fmt.Errorf("field %q: %w", rec.Key, err)
	}
	node, err := r.AddField(rec.Key, grid)
	if err != nil {
		return err
	}
	truncation := TruncationMode(rec.Truncation)
	switch usage {
	case domain.FieldState:
		err = node.UpdateStateField(truncation, rec.MinValue, rec.MaxValue)
	case domain.FieldParameter:
		err = node.UpdateParameterField(rec.OutputFile, rec.InitFilePattern, rec.MinStdFile,
			truncation, rec.MinValue, rec.MaxValue, rec.InitTransform, rec.OutputTransform)
	case domain.FieldGeneral:
		err = node.UpdateGeneralField(rec.OutputFile, rec.InputFile, rec.InitFilePattern, rec.MinStdFile,
			truncation, rec.MinValue, rec.MaxValue, rec.InitTransform, rec.InputTransform, rec.OutputTransform)
	}
	if err != nil {
		return err
	}
	applyNodeRecord(node, rec.NodeRecord)
	return nil
}

func applyNodeRecord(node *ConfigNode, rec domain.NodeRecord) {
	for _, obsKey := range rec.ObservationKeys {
		node.AddObservationKey(obsKey)
	}
	node.SetInternalize(rec.Internalize)
}

// SaveSnapshot exports the current state and writes it to the store.
func (r *Registry) SaveSnapshot(ctx context.Context, store SnapshotStore) error {
	done := r.begin("save_snapshot")
	err := store.Save(ctx, r.ExportSnapshot())
	done(err)
	return err
}

// LoadSnapshot reads the stored snapshot, if any, and imports it. Returns
// false without error when the store holds no snapshot.
func (r *Registry) LoadSnapshot(ctx context.Context, store SnapshotStore, grid Grid) (bool, error) {
	done := r.begin("load_snapshot")
	snap, ok, err := store.Load(ctx)
	if err != nil || !ok {
		done(err)
		return false, err
	}
	err = r.importSnapshot(snap, grid)
	done(err)
	return err == nil, err
}
