package tracing

// Span attribute keys.
const (
	AttrCommand      = "venom.command"
	AttrState        = "venom.session.state"
	AttrProperty     = "venom.edit.property"
	AttrTaskCount    = "venom.store.tasks"
	AttrLabelCount   = "venom.store.labels"
	AttrBackend      = "venom.storage.backend"
	AttrPath         = "venom.storage.path"
	AttrLabelsAdded  = "venom.labels.added"
	AttrLabelsRemove = "venom.labels.removed"
)

// Span names.
const (
	SpanApply  = "session.apply"
	SpanCommit = "session.commit"
	SpanSave   = "storage.save"
	SpanLoad   = "storage.load"
)
