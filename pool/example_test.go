package pool_test

import (
	"errors"
	"fmt"

	"github.com/momentics/speedcore/api"
	"github.com/momentics/speedcore/pool"
)

func ExampleArena() {
	arena, err := pool.NewArena(1024)
	if err != nil {
		panic(err)
	}
	var n int
	for {
		if _, err := arena.Alloc(100); errors.Is(err, api.ErrAllocationFailed) {
			break
		}
		n++
	}
	fmt.Println(n, arena.Used())

	arena.Reset()
	r, _ := arena.Alloc(100)
	fmt.Println(r.Offset())
	//output:
	//9 936
	//0
}
