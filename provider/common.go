package provider

import (
	"errors"
)

var ErrNilDataReader = errors.New("nil data reader supplied")
var ErrNilTargetList = errors.New("nil target list supplied")
var ErrNilDispatcher = errors.New("nil dispatcher supplied")
var ErrNilWriteBackHandler = errors.New("nil write-back handler supplied")
var ErrNoCurrentItem = errors.New("no current item, Next was not called or reported exhaustion")
var ErrReadingItemFailed = errors.New("reading item from data source failed")
var ErrAppendingItemFailed = errors.New("appending item to target list failed")
var ErrWriteBackFailed = errors.New("write-back invocation failed")
var ErrRetrievalCancelled = errors.New("retrieval was cancelled")
var ErrRetrievalNotFinished = errors.New("retrieval has not finished")
