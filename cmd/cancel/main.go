// Command cancel ports the original kernel's cancel demo: a countdown
// cancels its long-sleeping "kid" task blockingly, well before the kid's
// own sleep would have elapsed, and observes the kid's cancellation cleanup
// run before the cancel call itself returns.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joeycumines/eventio"
)

func kid(c *eventio.Ctx) (any, error) {
	fmt.Println("Playing")
	defer func() {
		if r := recover(); r != nil {
			var ce *eventio.CancelledError
			if errors.As(toError(r), &ce) {
				fmt.Println("saving my work")
			}
			panic(r)
		}
	}()
	c.Sleep(5)
	fmt.Println("kid finished playing")
	return nil, nil
}

func countdown(n int) func(*eventio.Ctx) (any, error) {
	return func(c *eventio.Ctx) (any, error) {
		child := c.Spawn(kid)
		for n > 0 {
			fmt.Println("T-minus", n)
			c.Sleep(0.5)
			n--
		}
		fmt.Println("cancel kid:", child.Cancel(c, true))
		k := c.GetKernel()
		fmt.Printf("Took %.1f seconds, %.1f%% CPU utilization\n", k.Uptime(), k.LoadAverage())
		return nil, nil
	}
}

func toError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return nil
}

func main() {
	if err := eventio.Run(context.Background(), countdown(3)); err != nil {
		log.Fatal(err)
	}
}
