// Package core implements the ensemble configuration registry: a
// concurrency-guarded map of configuration nodes keyed by variable name,
// together with config-text ingestion, serialization and snapshot support.
package core

import "ensemblecore/pkg/domain"

type (
	ImplementationKind = domain.ImplementationKind
	VariableClass      = domain.VariableClass
	LoadFailPolicy     = domain.LoadFailPolicy
	TruncationMode     = domain.TruncationMode
	ConfigNode         = domain.ConfigNode
	TransformTable     = domain.TransformTable
	ReferenceCase      = domain.ReferenceCase
	Grid               = domain.Grid
	Snapshot           = domain.Snapshot
	SnapshotStore      = domain.SnapshotStore
)

const (
	KindInvalid   = domain.KindInvalid
	KindField     = domain.KindField
	KindGenKW     = domain.KindGenKW
	KindGenData   = domain.KindGenData
	KindSurface   = domain.KindSurface
	KindSummary   = domain.KindSummary
	KindContainer = domain.KindContainer
	KindStatic    = domain.KindStatic
)

const (
	ClassInvalid      = domain.ClassInvalid
	ClassParameter    = domain.ClassParameter
	ClassDynamicState = domain.ClassDynamicState
	ClassStaticState  = domain.ClassStaticState
	ClassIndex        = domain.ClassIndex
)

const (
	LoadFailSilent = domain.LoadFailSilent
	LoadFailWarn   = domain.LoadFailWarn
	LoadFailExit   = domain.LoadFailExit
)

const (
	TruncateNone = domain.TruncateNone
	TruncateMin  = domain.TruncateMin
	TruncateMax  = domain.TruncateMax
)
