package pipeline

// Factory builds finalized pipelines for freshly-accepted transports. Server
// and client bootstraps consume this interface; a concrete factory adds its
// handler stack, finalizes and hands the pipeline back.
type Factory[R, W any] interface {
	NewPipeline(t Transport) (*Pipeline[R, W], error)
}
