// Command chandemo exercises the channel package's blocking, non-blocking,
// close, and select operations end to end, printing what each scenario
// observed. It takes no CLI framework dependency for six demo scenarios;
// its two flags are parsed with the standard flag package.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	channel "github.com/Yousef-Rabiah/concurrency-in-go"
)

func main() {
	scenario := flag.String("scenario", "all", "scenario to run: pingpong, close, nonblocking, select-ready, select-block, select-close, all")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger = zap.NewNop()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "chandemo: building logger:", err)
		os.Exit(1)
	}
	defer func() {
		// Sync can legitimately fail on stdout for non-file descriptors;
		// its error is discarded. multierr is used only in run, to combine
		// the errors of the scenarios.
		_ = logger.Sync()
	}()

	if runErr := run(*scenario, logger); runErr != nil {
		fmt.Fprintln(os.Stderr, "chandemo:", runErr)
		os.Exit(1)
	}
}

func run(scenario string, logger *zap.Logger) error {
	scenarios := map[string]func(*zap.Logger) error{
		"pingpong":     pingPong,
		"close":        closeWakesReceiver,
		"nonblocking":  nonBlockingFull,
		"select-ready": selectChoosesReady,
		"select-block": selectBlocksThenSent,
		"select-close": selectObservesClosure,
	}

	if scenario != "all" {
		fn, ok := scenarios[scenario]
		if !ok {
			return fmt.Errorf("unknown scenario %q", scenario)
		}
		return fn(logger)
	}

	var errs error
	for _, name := range []string{"pingpong", "close", "nonblocking", "select-ready", "select-block", "select-close"} {
		if err := scenarios[name](logger); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errs
}

func pingPong(logger *zap.Logger) error {
	c := channel.New[int](1, channel.WithLogger(logger))
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Send(0x1)
	}()
	v, status := c.Receive()
	<-done
	if status != channel.Success || v != 0x1 {
		return fmt.Errorf("ping-pong: got %v/%v", v, status)
	}
	fmt.Println("pingpong: received", v)
	return nil
}

func closeWakesReceiver(logger *zap.Logger) error {
	c := channel.New[int](4, channel.WithLogger(logger))
	done := make(chan channel.Status, 1)
	go func() {
		_, status := c.Receive()
		done <- status
	}()
	time.Sleep(10 * time.Millisecond)
	c.Close()
	select {
	case status := <-done:
		if status != channel.Closed {
			return fmt.Errorf("close: blocked receiver returned %v, want closed", status)
		}
		fmt.Println("close: blocked receiver observed closed")
		return nil
	case <-time.After(time.Second):
		return fmt.Errorf("close: blocked receiver never woke")
	}
}

func nonBlockingFull(logger *zap.Logger) error {
	c := channel.New[int](2, channel.WithLogger(logger))
	c.TrySend(0xA)
	c.TrySend(0xB)
	if status := c.TrySend(0xC); status != channel.ChannelFull {
		return fmt.Errorf("nonblocking: expected channel_full, got %v", status)
	}
	c.Receive()
	status := c.TrySend(0xC)
	fmt.Println("nonblocking: third send after drain returned", status)
	return nil
}

func selectChoosesReady(logger *zap.Logger) error {
	x := channel.New[int](1, channel.WithLogger(logger))
	y := channel.New[int](1, channel.WithLogger(logger))
	y.Send(0x7)

	idx, _, status := channel.Select([]channel.SelectCase{
		channel.SendCase(x, 0x3),
		channel.RecvCase(y),
	}, channel.SelectWithLogger(logger))
	fmt.Printf("select-ready: chose index %d, status %v\n", idx, status)
	return nil
}

func selectBlocksThenSent(logger *zap.Logger) error {
	x := channel.New[int](1, channel.WithLogger(logger))
	y := channel.New[int](1, channel.WithLogger(logger))
	done := make(chan struct{})
	go func() {
		defer close(done)
		idx, recv, status := channel.Select([]channel.SelectCase{
			channel.RecvCase(x),
			channel.RecvCase(y),
		}, channel.SelectWithLogger(logger))
		fmt.Printf("select-block: chose index %d, value %v, status %v\n", idx, recv, status)
	}()
	time.Sleep(10 * time.Millisecond)
	y.Send(0x9)
	<-done
	return nil
}

func selectObservesClosure(logger *zap.Logger) error {
	x := channel.New[int](1, channel.WithLogger(logger))
	y := channel.New[int](1, channel.WithLogger(logger))
	done := make(chan struct{})
	go func() {
		defer close(done)
		idx, _, status := channel.Select([]channel.SelectCase{
			channel.RecvCase(x),
			channel.RecvCase(y),
		}, channel.SelectWithLogger(logger))
		fmt.Printf("select-close: chose index %d, status %v\n", idx, status)
	}()
	time.Sleep(10 * time.Millisecond)
	x.Close()
	<-done
	return nil
}
