package sse

import (
	"encoding/json"
	"sync"
)

// простой hub для SSE-событий по runID

var (
	mu    sync.Mutex
	conns = map[string][]chan []byte{}
)

// Subscribe подписывает клиента на id, возвращает канал и функцию-unsubscribe
func Subscribe(id string) (chan []byte, func()) {
	ch := make(chan []byte, 16)

	mu.Lock()
	conns[id] = append(conns[id], ch)
	mu.Unlock()

	cancel := func() {
		mu.Lock()
		defer mu.Unlock()
		list := conns[id]
		for i, c := range list {
			if c == ch {
				conns[id] = append(list[:i], list[i+1:]...)
				break
			}
		}
	}

	return ch, cancel
}

// Publish сериализует payload в JSON и отсылает всем подписчикам runID
func Publish(id string, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		return
	}

	mu.Lock()
	list := append([]chan []byte(nil), conns[id]...)
	mu.Unlock()

	for _, ch := range list {
		select {
		case ch <- msg:
		default:
			// игнорируем, если канал забит
		}
	}
}
