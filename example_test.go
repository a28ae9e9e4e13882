package circbuf_test

import (
	"fmt"

	"github.com/aradilov/circbuf"
)

func ExampleBuffer() {
	b := circbuf.MustNew[byte](8)

	for _, c := range []byte("hello") {
		if err := b.Insert(c); err != nil {
			fmt.Println("insert:", err)
			return
		}
	}

	out := make([]byte, 8)
	n, _ := b.RemoveBulk(out)
	fmt.Printf("%s\n", out[:n])
	// Output: hello
}

func ExampleBuffer_SetOverwrite() {
	b := circbuf.MustNew[int](4)
	b.SetOverwrite(true)

	// Usable capacity is 3; older entries are evicted as newer arrive.
	for i := 1; i <= 6; i++ {
		b.Insert(i)
	}

	for {
		v, err := b.Remove()
		if err != nil {
			break
		}
		fmt.Println(v)
	}
	// Output:
	// 4
	// 5
	// 6
}

func ExampleBuffer_Stats() {
	b := circbuf.MustNew[int](4)

	b.Insert(1)
	b.Insert(2)
	b.Insert(3)
	b.Insert(4) // rejected, buffer full
	b.Remove()

	s := b.Stats()
	fmt.Println("inserts:", s.TotalInserts)
	fmt.Println("removes:", s.TotalRemoves)
	fmt.Println("overflows:", s.OverflowCount)
	fmt.Println("peak:", s.PeakUsage)
	// Output:
	// inserts: 3
	// removes: 1
	// overflows: 1
	// peak: 3
}
