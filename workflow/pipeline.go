package workflow

type StatProducer interface {
	Stats() interface{}
}
