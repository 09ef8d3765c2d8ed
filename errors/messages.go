// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package errors

// error messages

const (
	// panics
	PanicError = "panic: %v: %v"

	// sentinels
	UserInterrupt = "user interrupt"

	// pipeline controller
	ReservedInstruction    = "cpu error: reserved instruction (%#08x) at (%#08x)"
	ArithmeticOverflow     = "cpu error: arithmetic overflow in %s at (%#08x)"
	InvalidDuringExecution = "cpu error: invalid operation mid-cycle (%v)"
	ResetMidCycle          = "cpu error: appears to have been reset mid-cycle"

	// memory / bus
	UnreadableAddress = "memory error: cannot read address (%#08x)"
	UnwritableAddress = "memory error: cannot write address (%#08x)"
	UnpeekableAddress = "memory error: cannot peek address (%#08x)"
	UnpokeableAddress = "memory error: cannot poke address (%#08x)"

	// cache
	CacheConfigError = "cache error: %v"

	// program loader
	LoaderError         = "loader error: %v"
	LoaderFileError     = "loader error: cannot open image (%v)"
	LoaderAlignError    = "loader error: image length (%d) is not a multiple of 4"

	// config
	ConfigError         = "config error: %v"
	ConfigFileError     = "config error: cannot open file (%v)"
	ConfigDecodeError   = "config error: cannot decode (%v)"

	// commandline
	ParserError     = "parser error: %v"
	ValidationError = "%v"
)
