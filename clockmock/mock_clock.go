/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package clockmock is a hand-authored gomock mock for clock.Clock, in the
// shape mockgen produces (see ptp/sptp/client/clock_mock_test.go in the
// teacher repo for the generated form this follows). Kept as a regular
// package, not a _test.go file, so it can be imported by tests in hlc and
// any other package that needs to script clock.Clock behavior.
package clockmock

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockClock is a mock of the clock.Clock interface.
type MockClock struct {
	ctrl     *gomock.Controller
	recorder *MockClockMockRecorder
}

// MockClockMockRecorder is the mock recorder for MockClock.
type MockClockMockRecorder struct {
	mock *MockClock
}

// NewMockClock creates a new mock instance.
func NewMockClock(ctrl *gomock.Controller) *MockClock {
	mock := &MockClock{ctrl: ctrl}
	mock.recorder = &MockClockMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockClock) EXPECT() *MockClockMockRecorder {
	return m.recorder
}

// PollTimeMs mocks base method.
func (m *MockClock) PollTimeMs() float64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PollTimeMs")
	ret0, _ := ret[0].(float64)
	return ret0
}

// PollTimeMs indicates an expected call of PollTimeMs.
func (mr *MockClockMockRecorder) PollTimeMs() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PollTimeMs", reflect.TypeOf((*MockClock)(nil).PollTimeMs))
}

// GetOffsetMs mocks base method.
func (m *MockClock) GetOffsetMs() int64 {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetOffsetMs")
	ret0, _ := ret[0].(int64)
	return ret0
}

// GetOffsetMs indicates an expected call of GetOffsetMs.
func (mr *MockClockMockRecorder) GetOffsetMs() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetOffsetMs", reflect.TypeOf((*MockClock)(nil).GetOffsetMs))
}

// SetOffsetMs mocks base method.
func (m *MockClock) SetOffsetMs(ms int64) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "SetOffsetMs", ms)
}

// SetOffsetMs indicates an expected call of SetOffsetMs.
func (mr *MockClockMockRecorder) SetOffsetMs(ms any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetOffsetMs", reflect.TypeOf((*MockClock)(nil).SetOffsetMs), ms)
}
