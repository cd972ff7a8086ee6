package filter

import (
	"container/list"
	"sync"

	"github.com/expr-lang/expr/vm"
)

// programCache memoises compiled programs by expression, evicting the least
// recently used once full.
type programCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recently used
	byExpr   map[string]*list.Element
}

type cachedProgram struct {
	expression string
	program    *vm.Program
}

func newProgramCache(capacity int) *programCache {
	if capacity < 1 {
		capacity = 1
	}
	return &programCache{
		capacity: capacity,
		order:    list.New(),
		byExpr:   make(map[string]*list.Element),
	}
}

func (c *programCache) get(expression string) (*vm.Program, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.byExpr[expression]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(elem)
	return elem.Value.(*cachedProgram).program, true
}

func (c *programCache) put(expression string, program *vm.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.byExpr[expression]; ok {
		elem.Value.(*cachedProgram).program = program
		c.order.MoveToFront(elem)
		return
	}

	c.byExpr[expression] = c.order.PushFront(&cachedProgram{expression: expression, program: program})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.byExpr, oldest.Value.(*cachedProgram).expression)
	}
}

func (c *programCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *programCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	clear(c.byExpr)
}
