// Package goroutine launches background work with panic containment.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/retain-hq/retain/internal/shared/logger"
)

// SafeGo runs fn on its own goroutine. A panic inside fn is recovered and
// logged under name with the stack attached; the process keeps serving.
// Event handlers and scheduler jobs go through here so one bad subscriber
// cannot take the worker down.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
			}
		}()
		fn()
	}()
}
