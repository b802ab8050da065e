package mocks

import "sync"

// MockQueue records published messages for assertions.
type MockQueue struct {
	PublishFunc func(subject string, data []byte) error

	mu        sync.Mutex
	Published map[string][][]byte
}

func NewMockQueue() *MockQueue {
	return &MockQueue{Published: make(map[string][][]byte)}
}

func (m *MockQueue) Publish(subject string, data []byte) error {
	m.mu.Lock()
	m.Published[subject] = append(m.Published[subject], data)
	m.mu.Unlock()

	if m.PublishFunc != nil {
		return m.PublishFunc(subject, data)
	}
	return nil
}

func (m *MockQueue) Subscribe(subject string, handler func(data []byte) error) error {
	return nil
}

func (m *MockQueue) Close() error {
	return nil
}
