// Command event ports the original kernel's event demo: a parent lets a
// kid go play once an Event is set, the kid spawns three friends, and
// everyone is cancelled in turn once the parent decides it's time to go.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joeycumines/eventio"
)

var startEvent = eventio.NewEvent()

func countdown(n int) func(*eventio.Ctx) (any, error) {
	return func(c *eventio.Ctx) (any, error) {
		for n > 0 {
			fmt.Println("T-minus", n)
			c.Sleep(0.5)
			n--
		}
		return nil, nil
	}
}

func friend(name string) func(*eventio.Ctx) (any, error) {
	return func(c *eventio.Ctx) (any, error) {
		fmt.Println("Hi, my name is", name)
		fmt.Println("Playing Minecraft")
		defer func() {
			if r := recover(); r != nil {
				var ce *eventio.CancelledError
				if errors.As(toError(r), &ce) {
					fmt.Println(name, "going home")
				}
				panic(r)
			}
		}()
		c.Sleep(10)
		fmt.Println(name, "done playing")
		return nil, nil
	}
}

func kid(c *eventio.Ctx) (any, error) {
	fmt.Println("Can I play?")
	startEvent.Wait(c)

	fmt.Println("Building the Millenium Falcon in Minecraft")

	paul := c.Spawn(friend("Paul"))
	anna := c.Spawn(friend("Anna"))
	tom := c.Spawn(friend("Tom"))
	defer func() {
		if r := recover(); r != nil {
			var ce *eventio.CancelledError
			if errors.As(toError(r), &ce) {
				paul.Cancel(c, true)
				anna.Cancel(c, true)
				tom.Cancel(c, true)
				fmt.Println("Fine. Saving my work.")
			}
			panic(r)
		}
	}()
	c.Sleep(10)
	return nil, nil
}

func parent(c *eventio.Ctx) (any, error) {
	kidTask := c.Spawn(kid)
	c.Sleep(1)

	fmt.Println("Yes, go play")
	startEvent.Set(c)
	c.Sleep(4)

	fmt.Println("Let's go")
	countTask := c.Spawn(countdown(4))
	fmt.Println("countTask.join")
	_, _ = countTask.Join(c)
	fmt.Println("countTask joined")

	fmt.Println("We're leaving!")
	fmt.Println("I warned you!")
	fmt.Println("cancel kid:", kidTask.Cancel(c, true))
	fmt.Println("Leaving!")
	return nil, nil
}

func toError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return nil
}

func main() {
	if err := eventio.Run(context.Background(), parent); err != nil {
		log.Fatal(err)
	}
}
