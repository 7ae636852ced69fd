package pipeline

// Manager owns one or more pipelines. A handler that decides its pipeline
// should go away calls DeletePipeline on the pipeline, which forwards to the
// manager; the manager is the only party that may actually release it.
type Manager interface {
	DeletePipeline(p *Base)
}
