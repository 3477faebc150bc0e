// SPDX-License-Identifier: EPL-2.0

// Package volume implements the software volume unit of the mixer.
//
// A Volume is a 32-bit fixed-point gain on a cubic loudness curve: Norm is
// unity gain, Muted is silence, and the linear amplitude factor of v is
// (v/Norm)^3. ChannelVolume holds one Volume per interleaved channel.
//
//	v := volume.FromLinear(0.9) // 63274
//	v.Linear()                  // ~0.89999
//	v.Fixed()                   // 58982, the 16.16 factor used for integer samples
package volume
