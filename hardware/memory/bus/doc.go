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

// Package bus defines the single access pattern between the cache layer and
// main memory: MemoryBus. The cache never talks to main memory except
// through this interface, which keeps the cache model oblivious to how main
// memory is actually stored (see hardware/memory/store).
//
// DebugBus is for the exclusive use of the dumper and tests, and exposes a
// Peek() and Poke() function that bypass the cache entirely.
package bus
