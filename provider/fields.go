package provider

import (
	"context"
	"errors"
	"reflect"
	"unsafe"

	"github.com/yeuyeduyin/DataFX/observable"
)

// NamedObservable pairs a field identifier with its observable value container.
type NamedObservable struct {
	Name  string
	Value observable.Observable
}

// FieldProvider is implemented by domain types that enumerate their own
// observable fields for write-back wiring. The returned sequence is ordered;
// exclusion is expressed by omitting a field from it.
//
// Types that do not implement FieldProvider fall back to a reflective scan
// of the concrete struct type's own declared fields: a field qualifies when
// its type implements observable.Observable and it does not carry the
// `datafx:"transient"` struct tag. Embedded structs are not recursed into.
type FieldProvider interface {
	ObservableFields() []NamedObservable
}

const (
	fieldTagKey       = "datafx"
	fieldTagTransient = "transient"
)

var observableType = reflect.TypeOf((*observable.Observable)(nil)).Elem()

// wireWriteBack attaches one invalidation listener to every observable field
// of the item. Each firing creates a sink for the whole item and invokes it;
// rapid successive invalidations are not coalesced. Runs on the dispatcher.
func (p *ListProvider[T]) wireWriteBack(item T, handler WriteBackHandler[T]) {
	for _, field := range p.observableFieldsOf(item) {
		field.Value.AddListener(func(observable.Observable) {
			sink := handler.CreateSink(item)

			if _, err := sink.Invoke(context.Background()); err != nil {
				p.reportWriteBackFailure(errors.Join(ErrWriteBackFailed, err))
			}
		})
	}
}

func (p *ListProvider[T]) observableFieldsOf(item T) []NamedObservable {
	if fieldProvider, ok := any(item).(FieldProvider); ok {
		return fieldProvider.ObservableFields()
	}

	return p.reflectObservableFields(item)
}

// reflectObservableFields scans the item's concrete struct type. Unexported
// fields are read through the reflect accessibility override; a field that
// still cannot be read is logged and skipped without aborting the scan.
func (p *ListProvider[T]) reflectObservableFields(item T) []NamedObservable {
	value := reflect.ValueOf(item)

	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil
		}

		value = value.Elem()
	}

	if value.Kind() != reflect.Struct {
		return nil
	}

	structType := value.Type()
	fields := make([]NamedObservable, 0, structType.NumField())

	for i := 0; i < structType.NumField(); i++ {
		structField := structType.Field(i)

		// only observable fields without the transient tag are considered
		if structField.Tag.Get(fieldTagKey) == fieldTagTransient {
			continue
		}

		if !structField.Type.Implements(observableType) {
			continue
		}

		fieldValue := value.Field(i)

		if !fieldValue.CanInterface() {
			if !fieldValue.CanAddr() {
				p.logFieldAccessFailure(structType, structField.Name)
				continue
			}

			fieldValue = reflect.NewAt(fieldValue.Type(), unsafe.Pointer(fieldValue.UnsafeAddr())).Elem()
		}

		switch fieldValue.Kind() {
		case reflect.Pointer, reflect.Interface:
			if fieldValue.IsNil() {
				continue // declared observable but not initialized
			}
		}

		fieldObservable, ok := fieldValue.Interface().(observable.Observable)
		if !ok {
			continue
		}

		fields = append(fields, NamedObservable{Name: structField.Name, Value: fieldObservable})
	}

	return fields
}

func (p *ListProvider[T]) logFieldAccessFailure(structType reflect.Type, fieldName string) {
	if p.logger == nil {
		return
	}

	p.logger.Warn(logMsgFieldNotAccessible,
		logAttrItemType, structType.String(),
		logAttrField, fieldName)
}
