/*
 * MIT License
 *
 * Copyright (c) 2022-2025  Arsene Tochemey Gandote
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package hub

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/tochemey/rpchub/credentials"
	"github.com/tochemey/rpchub/internal/executor"
	"github.com/tochemey/rpchub/internal/grpcserver"
	"github.com/tochemey/rpchub/internal/trigger"
	"github.com/tochemey/rpchub/log"
)

// State represents the endpoint server lifecycle state
type State int32

const (
	// Stopped means no native server is live; the manager is resumable
	Stopped State = iota
	// Running means a native server is serving the current service set
	Running
	// Stopping means a native stop is in flight
	Stopping
	// Shutdown is terminal; no transition leaves it
	Shutdown
)

// String returns the string representation of the State
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Running:
		return "Running"
	case Stopping:
		return "Stopping"
	case Shutdown:
		return "Shutdown"
	default:
		return "Unknown"
	}
}

type commandKind int

const (
	cmdStart commandKind = iota
	cmdStop
	cmdShutdown
)

// command is processed one at a time by the loop goroutine, so a stop or
// shutdown requested while a start is in flight queues behind it
type command struct {
	kind  commandKind
	reply chan error
}

// Server owns the process's shared gRPC endpoint. Roles contribute services
// through RegisterRoleServices and withdraw them through
// DeregisterRoleServices; the server restarts its native instance at most
// once per quiet debounce window to apply the accumulated changes.
//
// The native server instance is exclusively owned by the loop goroutine and
// is rebuilt from a fresh registry snapshot on every restart cycle.
type Server struct {
	mu          sync.Mutex
	loopStarted bool

	address  string
	provider credentials.Provider
	logger   log.Logger
	window   time.Duration

	registry  *registry
	debouncer *debouncer
	executor  *executor.Executor

	state     *atomic.Int32
	numStarts *atomic.Uint64
	// wantRun tells a debounce expiry apart from a deliberate stop: it is
	// true from Run until StopServer, Shutdown or a failed start
	wantRun *atomic.Bool

	commands chan *command
	done     chan struct{}

	nextStart *trigger.Trigger
	stopped   *trigger.Trigger
	// deregApplied fires once pending deregistrations have taken effect,
	// i.e. on any completed native stop
	deregApplied *trigger.Trigger

	// serverOwner holds the services registered without a role through
	// RegisterService; they live until Shutdown
	serverOwner OwnerID

	// native is only touched by the loop goroutine
	native grpcserver.Server
	// newServer builds the native server from a registry snapshot;
	// overridable in tests
	newServer func(services []Service) (grpcserver.Server, error)
}

// New creates an endpoint server listening on the given address once Run is
// called. The zero-value configuration uses insecure transport credentials
// and the default debounce window.
func New(address string, opts ...Option) (*Server, error) {
	if address == "" {
		return nil, ErrEmptyAddress
	}

	srv := &Server{
		address:      address,
		provider:     credentials.NewInsecure(),
		logger:       log.DefaultLogger,
		window:       DefaultDebounceWindow,
		registry:     newRegistry(),
		state:        atomic.NewInt32(int32(Stopped)),
		numStarts:    atomic.NewUint64(0),
		wantRun:      atomic.NewBool(false),
		commands:     make(chan *command),
		done:         make(chan struct{}),
		nextStart:    trigger.New(),
		stopped:      trigger.New(),
		deregApplied: trigger.New(),
		serverOwner:  NewOwnerID(),
	}

	for _, opt := range opts {
		opt(srv)
	}

	// a single worker serializes the blocking native calls so no stop can
	// race ahead of the start it supersedes
	srv.executor = executor.New(executor.WithWorkers(1))
	srv.debouncer = newDebouncer(srv.window)
	srv.newServer = srv.buildNative
	return srv, nil
}

// Run starts the lifecycle loop when needed and brings the native server up
// with the current registry snapshot. It returns once the start completed or
// failed. Calling Run while already running is a no-op; a failed start is
// not retried until the next explicit Run call.
func (x *Server) Run(ctx context.Context) error {
	if x.State() == Shutdown {
		return ErrServerShutdown
	}

	x.mu.Lock()
	if !x.loopStarted {
		x.loopStarted = true
		x.executor.Start()
		go x.loop()
	}
	x.mu.Unlock()

	x.wantRun.Store(true)
	return x.send(ctx, cmdStart)
}

// StopServer stops the native server gracefully. The manager stays
// resumable: a later Run brings a fresh native server up. Stopping a server
// that is not running is a no-op.
func (x *Server) StopServer(ctx context.Context) error {
	if x.State() == Shutdown {
		return ErrServerShutdown
	}

	x.mu.Lock()
	loopStarted := x.loopStarted
	x.mu.Unlock()
	if !loopStarted {
		return nil
	}

	x.wantRun.Store(false)
	x.debouncer.Disarm()
	return x.send(ctx, cmdStop)
}

// Shutdown stops the native server if running and terminates the lifecycle
// loop permanently. After Shutdown the registry is frozen and every pending
// observer subscription is abandoned. Safe to call more than once.
func (x *Server) Shutdown(ctx context.Context) error {
	x.mu.Lock()
	if x.State() == Shutdown {
		x.mu.Unlock()
		return nil
	}
	if !x.loopStarted {
		// the loop never ran: transition in place
		x.state.Store(int32(Shutdown))
		x.wantRun.Store(false)
		x.closeTriggers()
		close(x.done)
		x.mu.Unlock()
		return nil
	}
	x.mu.Unlock()

	x.wantRun.Store(false)
	err := x.send(ctx, cmdShutdown)
	if errors.Is(err, ErrServerShutdown) {
		// a concurrent Shutdown won the race
		return nil
	}
	return err
}

// Done returns a channel closed once the lifecycle loop has permanently
// exited, i.e. after Shutdown completed.
func (x *Server) Done() <-chan struct{} {
	return x.done
}

// OnNextStart subscribes to the next transition into Running after the call.
// The channel receives nil on a successful start or the error of a failed
// start attempt, exactly once, and is then closed. After Shutdown the
// channel never receives.
func (x *Server) OnNextStart() <-chan error {
	return x.nextStart.Subscribe()
}

// OnRunning behaves like OnNextStart except that it delivers immediately
// when the server is already Running.
func (x *Server) OnRunning() <-chan error {
	if x.State() == Running {
		ch := make(chan error, 1)
		ch <- nil
		close(ch)
		return ch
	}
	return x.nextStart.Subscribe()
}

// OnStopped subscribes to the next transition into Stopped
func (x *Server) OnStopped() <-chan error {
	return x.stopped.Subscribe()
}

// RegisterRoleServices appends the given services to the owner's registered
// set. The change arms the restart debouncer when the server is meant to be
// running; otherwise it simply accumulates until the next Run. Registering
// after Shutdown has no effect: the freeze check and the mutation are
// serialized so no registration can slip in behind the freeze.
func (x *Server) RegisterRoleServices(owner OwnerID, services ...Service) {
	if len(services) == 0 {
		return
	}
	x.mu.Lock()
	if x.State() == Shutdown {
		x.mu.Unlock()
		return
	}
	x.registry.Register(owner, services...)
	x.mu.Unlock()
	x.armDebouncer()
}

// RegisterService registers a service that is not tied to any role's
// lifetime; it stays registered until Shutdown
func (x *Server) RegisterService(service Service) {
	x.RegisterRoleServices(x.serverOwner, service)
}

// DeregisterRoleServices removes all of the owner's services. The returned
// channel receives once the removal is live, i.e. once no native server is
// serving the removed services anymore: after the stop of the next restart
// cycle, or after a deliberate stop, whichever comes first. It receives
// immediately when nothing was removed or the server is not meant to be
// running. Deregistering an unknown owner is a no-op.
func (x *Server) DeregisterRoleServices(owner OwnerID) <-chan error {
	x.mu.Lock()
	if x.State() == Shutdown {
		x.mu.Unlock()
		return completed(ErrServerShutdown)
	}
	removed := x.registry.Deregister(owner)
	x.mu.Unlock()

	if !removed || !x.wantRun.Load() {
		return completed(nil)
	}
	applied := x.deregApplied.Subscribe()
	x.armDebouncer()
	return applied
}

// State returns the current lifecycle state
func (x *Server) State() State {
	return State(x.state.Load())
}

// IsRunning returns true when a native server is live
func (x *Server) IsRunning() bool {
	return x.State() == Running
}

// HasStarted returns true once at least one native start succeeded
func (x *Server) HasStarted() bool {
	return x.numStarts.Load() > 0
}

// NumStarts returns how many native starts have succeeded. It increases by
// exactly one per completed start and never decreases.
func (x *Server) NumStarts() uint64 {
	return x.numStarts.Load()
}

// IsTLSEnabled returns true when the credential provider performs TLS
func (x *Server) IsTLSEnabled() bool {
	return x.provider.TLSEnabled()
}

// Address returns the listening address of the endpoint
func (x *Server) Address() string {
	return x.address
}

// send queues a command on the loop and awaits its outcome
func (x *Server) send(ctx context.Context, kind commandKind) error {
	reply := make(chan error, 1)
	select {
	case x.commands <- &command{kind: kind, reply: reply}:
	case <-x.done:
		return ErrServerShutdown
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// loop is the single goroutine owning the native server and the state
// transitions. It processes one command or debounce expiry at a time.
func (x *Server) loop() {
	for {
		select {
		case cmd := <-x.commands:
			switch cmd.kind {
			case cmdStart:
				cmd.reply <- x.handleStart()
			case cmdStop:
				cmd.reply <- x.handleStop()
			case cmdShutdown:
				cmd.reply <- x.handleShutdown()
				close(x.done)
				return
			}
		case <-x.debouncer.C():
			x.handleRestart()
		}
	}
}

// handleStart is a no-op while Running so that repeated Run calls never
// trigger an extra start
func (x *Server) handleStart() error {
	if x.State() == Running {
		return nil
	}
	return x.startNative()
}

func (x *Server) startNative() error {
	snapshot := x.registry.Snapshot()
	native, err := x.newServer(snapshot)
	if err != nil {
		x.wantRun.Store(false)
		x.nextStart.Fire(err)
		return fmt.Errorf("failed to build the endpoint server: %w", err)
	}

	if err := x.executor.Submit(native.Start).AwaitUninterruptible().Failure(); err != nil {
		x.wantRun.Store(false)
		x.nextStart.Fire(err)
		return fmt.Errorf("failed to start the endpoint server: %w", err)
	}

	x.native = native
	x.state.Store(int32(Running))
	x.numStarts.Inc()
	x.nextStart.Fire(nil)
	x.logger.Infof("endpoint server started on %s with %d services", x.address, len(snapshot))
	return nil
}

func (x *Server) handleStop() error {
	if x.State() != Running {
		return nil
	}

	x.state.Store(int32(Stopping))
	err := x.executor.Submit(x.native.Stop).AwaitUninterruptible().Failure()
	x.native = nil
	x.state.Store(int32(Stopped))
	x.stopped.Fire(err)
	if err != nil {
		return fmt.Errorf("failed to stop the endpoint server: %w", err)
	}

	// a completed stop leaves no service live, so every pending
	// deregistration is in effect even though no new server started yet
	x.deregApplied.Fire(nil)
	x.logger.Infof("endpoint server stopped on %s", x.address)
	return nil
}

// handleRestart runs one stop-then-start cycle against a fresh registry
// snapshot. Registry changes landing while the cycle is in flight re-arm the
// debouncer and are applied by the next cycle.
func (x *Server) handleRestart() {
	if !x.wantRun.Load() {
		// the server was stopped deliberately while the window was pending
		return
	}

	if err := x.handleStop(); err != nil {
		x.wantRun.Store(false)
		x.deregApplied.Fire(err)
		return
	}

	// deregistration waiters were resolved by the completed stop; a start
	// failure surfaces through the nextStart subscribers
	if err := x.startNative(); err != nil {
		x.logger.Errorf("debounced restart failed: %v", err)
	}
}

func (x *Server) handleShutdown() error {
	x.debouncer.Disarm()
	if x.State() == Running {
		// shutdown is absorbing: a stop failure is logged, never resurfaced
		if err := x.executor.Submit(x.native.Stop).AwaitUninterruptible().Failure(); err != nil {
			x.logger.Warnf("failed to stop the endpoint server during shutdown: %v", err)
		}
		x.native = nil
	}

	// store the terminal state under the mutex so no registry mutation can
	// pass the freeze check afterwards
	x.mu.Lock()
	x.state.Store(int32(Shutdown))
	x.mu.Unlock()
	x.closeTriggers()
	x.executor.Stop()
	x.logger.Infof("endpoint server on %s shut down", x.address)
	return nil
}

func (x *Server) closeTriggers() {
	x.nextStart.Close()
	x.stopped.Close()
	x.deregApplied.Close()
}

func (x *Server) armDebouncer() {
	if x.wantRun.Load() && x.State() != Shutdown {
		x.debouncer.Arm()
	}
}

// buildNative assembles the native gRPC server from a registry snapshot
func (x *Server) buildNative(services []Service) (grpcserver.Server, error) {
	registrables := make([]grpcserver.Service, len(services))
	for i, service := range services {
		registrables[i] = service
	}
	return grpcserver.New(x.address,
		grpcserver.WithLogger(x.logger),
		grpcserver.WithServices(registrables...),
		grpcserver.WithCredentials(x.provider.ServerCredentials()))
}

// completed returns a channel already carrying the given outcome
func completed(err error) <-chan error {
	ch := make(chan error, 1)
	ch <- err
	close(ch)
	return ch
}
