// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package compiler

// semaphore bounds the number of files parsed at once.
type semaphore struct {
	x chan struct{}
}

func newSemaphore(v int) *semaphore {
	return &semaphore{
		x: make(chan struct{}, v),
	}
}

func (self *semaphore) Lock() {
	self.x <- struct{}{}
}

func (self *semaphore) Unlock() {
	<-self.x
}
