package eventbus

import (
	"encoding/json"
	"log"
	"sync/atomic"

	"github.com/IBM/sarama"
)

// KafkaMirrorConfig configures the optional async fan-out of every published
// Event to a Kafka topic, for out-of-process consumers (analytics, fraud
// review, a second replay sink) that must not affect hand processing.
type KafkaMirrorConfig struct {
	Brokers []string
	Topic   string
}

// KafkaMirror fans events out to Kafka on sarama's async producer. It never
// blocks Publish: Mirror enqueues onto the producer's input channel and
// returns immediately, dropping the event if the channel is full rather than
// stalling the hand.
type KafkaMirror struct {
	producer sarama.AsyncProducer
	topic    string
	dropped  int64
}

// NewKafkaMirror dials Kafka and starts draining the producer's error
// channel in the background. Construction can block briefly on the initial
// broker connection; callers typically do this once at startup.
func NewKafkaMirror(cfg KafkaMirrorConfig) (*KafkaMirror, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Producer.Return.Successes = false
	saramaCfg.Producer.Return.Errors = true
	saramaCfg.Producer.RequiredAcks = sarama.WaitForLocal

	producer, err := sarama.NewAsyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	m := &KafkaMirror{producer: producer, topic: cfg.Topic}
	go m.drainErrors()
	return m, nil
}

func (m *KafkaMirror) drainErrors() {
	for err := range m.producer.Errors() {
		log.Printf("[eventbus] kafka mirror delivery failed: %v", err)
	}
}

// Mirror implements Mirror. It marshals event to JSON and enqueues it on the
// producer's input channel without waiting for a broker acknowledgement.
func (m *KafkaMirror) Mirror(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[eventbus] kafka mirror failed to encode %s/%s: %v", event.GameID, event.Type, err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: m.topic,
		Key:   sarama.StringEncoder(event.GameID),
		Value: sarama.ByteEncoder(data),
	}

	select {
	case m.producer.Input() <- msg:
	default:
		atomic.AddInt64(&m.dropped, 1)
	}
}

// Dropped reports how many events were discarded because the producer's
// input channel was full — a backpressure signal, not an error.
func (m *KafkaMirror) Dropped() int64 {
	return atomic.LoadInt64(&m.dropped)
}

// Close stops accepting new events and releases the underlying producer.
func (m *KafkaMirror) Close() error {
	return m.producer.Close()
}
