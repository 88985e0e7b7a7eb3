package ioimport

import (
	"fmt"
	"runtime"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/errcode"
	"github.com/gnames/gn"
)

func InProgressError() error {
	msg := "An import is already in progress"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportInProgressError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: import already in progress", fn),
	}
}

func FetchError(err error) error {
	msg := "Cannot fetch card data"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportFetchError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot fetch card data: %w", fn, err),
	}
}

func ClearError(err error) error {
	msg := "Cannot clear existing card data"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportClearError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot clear card data: %w", fn, err),
	}
}

func VerifyError(err error) error {
	msg := "Cannot verify imported card data"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ImportVerifyError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot verify import: %w", fn, err),
	}
}
