// Package sim provides the core primitives for integrating small ODE systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations:
//
//   - [State]: vector representing system state
//   - [Dynamics]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical stepping interface
//   - [Simulator]: drives one solve and samples it at requested times
//   - [Ensemble]: a batch of independent solves run in parallel
//
// # Example
//
//	dyn, err := career.NewSystem(career.DefaultParams(), nil)
//	if err != nil {
//		return err
//	}
//	s := sim.New(dyn, integrators.NewRK45())
//	result, err := s.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For parallel batches, use
// [Ensemble], which builds an independent dynamics instance per run.
package sim
