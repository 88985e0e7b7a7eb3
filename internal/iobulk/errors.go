package iobulk

import (
	"fmt"
	"runtime"

	"github.com/Eunomiac/brawl-deck-builder-sub000/pkg/errcode"
	"github.com/gnames/gn"
)

func DescriptorError(err error) error {
	msg := "Cannot fetch Scryfall bulk data catalog"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BulkDescriptorError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: cannot fetch bulk catalog: %w",
			fn, err),
	}
}

func DescriptorMissingError(bulkType string) error {
	msg := "Scryfall bulk catalog has no <em>%s</em> entry"
	vars := []any{bulkType}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BulkDescriptorError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: bulk type %s not in catalog",
			fn, bulkType),
	}
}

func DownloadError(uri string, err error) error {
	msg := "Cannot download bulk file from <em>%s</em>"
	vars := []any{uri}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BulkDownloadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot download %s: %w",
			fn, uri, err),
	}
}

func DownloadStatusError(uri string, status int) error {
	msg := "Bulk download from <em>%s</em> returned HTTP %d"
	vars := []any{uri, status}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BulkDownloadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: download %s: HTTP %d",
			fn, uri, status),
	}
}

func DecodeError(err error) error {
	msg := "Cannot decode bulk card data"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.BulkDecodeError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: cannot decode bulk data: %w",
			fn, err),
	}
}
