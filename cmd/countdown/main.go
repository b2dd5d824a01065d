// Command countdown ports the original kernel's countdown/kid demo: a
// countdown task spawns a "kid" task that plays for half a second while the
// parent counts down, then reports uptime and CPU utilization.
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
	c.Sleep(0.5)
	fmt.Println("kid finished playing")
	return nil, nil
}

func countdown(n int) func(*eventio.Ctx) (any, error) {
	return func(c *eventio.Ctx) (any, error) {
		c.Spawn(kid)
		for n > 0 {
			fmt.Println("T-minus", n)
			c.Sleep(0.5)
			n--
		}
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
	if err := eventio.Run(context.Background(), countdown(5)); err != nil {
		log.Fatal(err)
	}
}
