// Package trajectory holds the training data model of the trainer: labelled
// trajectories grouped by class, their preparation into classification and
// Lyapunov point sets, the ASCII dataset format, and a deterministic synthetic
// generator for tests and demos.
//
// 📦 Data flow
//
//	ReadDataset / Converging  →  *Dataset  →  Prepare(target)  →  *TrainingSet
//
// A TrainingSet carries:
//
//   - Classification: every non-final point of every trajectory, labelled +1
//     for the target class and −1 otherwise.
//   - Lyapunov: every non-final point of the target class, with its velocity.
//   - Anchor: the mean endpoint of the target class trajectories.
//
// Velocities are unit-normalised forward differences; a zero displacement
// yields a zero velocity.
//
// ⚠️ Errors
//
// All validation failures are sentinels (ErrShortTrajectory,
// ErrDimensionMismatch, ErrNoClasses, ...) wrapped with the offending class and
// trajectory index; match them with errors.Is.
package trajectory
