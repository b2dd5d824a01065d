// Command blink3 ports the original kernel's three-LED blink demo: three
// tasks blink at different periods until a button's PinEvent fires, at
// which point all three are cancelled and the kernel reports how long it
// ran. There is no real GPIO driver here, so the button is a FakePin fired
// by a background goroutine after a fixed delay, standing in for an
// operator pressing sw1.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joeycumines/eventio"
)

func blink(color string, period float64) func(*eventio.Ctx) (any, error) {
	return func(c *eventio.Ctx) (any, error) {
		on := false
		defer func() {
			if r := recover(); r != nil {
				var ce *eventio.CancelledError
				if errors.As(toError(r), &ce) {
					fmt.Println(color, "cancelled")
				}
				panic(r)
			}
		}()
		for {
			c.Sleep(period / 2)
			on = !on
			_ = on // LED state toggle; no real hardware to drive
		}
	}
}

func run(c *eventio.Ctx) (any, error) {
	pin := &eventio.FakePin{}
	sw1, err := eventio.NewPinEvent(c, pin, eventio.PullUp)
	if err != nil {
		return nil, err
	}

	// Simulate a button press 3 seconds in, from outside the kernel's
	// dispatch goroutine, exactly as a real interrupt would arrive.
	go func() {
		time.Sleep(3 * time.Second)
		pin.Fire()
	}()

	r := c.Spawn(blink("red  ", 0.7))
	g := c.Spawn(blink("green", 0.3))
	b := c.Spawn(blink("blue ", 0.5))
	fmt.Println("All LEDs blinking ...")
	sw1.Wait(c)
	fmt.Println("Button pressed! Cancelling blinkers ...")
	r.Cancel(c, true)
	g.Cancel(c, true)
	b.Cancel(c, true)

	k := c.GetKernel()
	fmt.Printf("Program ran for %.1f seconds with %.1f%% CPU utilization\n", k.Uptime(), k.LoadAverage())
	return nil, nil
}

func toError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return nil
}

func main() {
	if err := eventio.Run(context.Background(), run); err != nil {
		log.Fatal(err)
	}
}
