// Package oscillator provides the deterministic shaker model that drives
// both the arm scene and the recorded signal.
//
// The model is a closed-form function of simulation time:
//
//   - [Params]: the control-deck state, owned by the caller and read every frame
//   - [Clock]: simulation time, advanced by capped wall deltas while running
//   - [Model]: arm angle and cable polyline for a time and parameter set
//   - [Pose]: joint rotations and effector position for an arm angle
//   - [SpeedTracker]: the angular speed proxy
//
// # Example
//
//	params := oscillator.DefaultParams()
//	model := oscillator.NewModel(seed)
//	angle := model.ArmAngle(t, params)
//	tip := oscillator.PoseFor(angle).Effector()
//	cable := model.Cable(t, params, oscillator.Anchor, tip, nil)
//
// # Determinism
//
// For a fixed seed the per-point cable phases are fixed, so identical
// (time, parameters) inputs always produce identical output.
package oscillator
