package observable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_List_AppendGrowsListInOrder(t *testing.T) {
	list := NewList[string]()

	list.Append("first")
	list.Append("second")
	list.Append("third")

	require.Equal(t, 3, list.Len())
	assert.Equal(t, "first", list.Get(0))
	assert.Equal(t, "second", list.Get(1))
	assert.Equal(t, "third", list.Get(2))
}

func Test_List_ItemsReturnsIndependentCopy(t *testing.T) {
	list := NewList[int]()
	list.Append(1)
	list.Append(2)

	items := list.Items()
	items[0] = 99

	assert.Equal(t, 1, list.Get(0))
}

func Test_List_AppendNotifiesChangeListenerWithAddedItem(t *testing.T) {
	list := NewList[string]()
	list.Append("existing")

	var changes []Change[string]
	list.AddChangeListener(func(change Change[string]) {
		changes = append(changes, change)
	})

	list.Append("new")

	require.Len(t, changes, 1)
	assert.Equal(t, []string{"new"}, changes[0].Added)
	assert.Equal(t, 1, changes[0].From)
}

func Test_List_AppendAllNotifiesSingleBatchedChange(t *testing.T) {
	list := NewList[int]()

	var changes []Change[int]
	list.AddChangeListener(func(change Change[int]) {
		changes = append(changes, change)
	})

	list.AppendAll(10, 20, 30)

	require.Len(t, changes, 1)
	assert.Equal(t, []int{10, 20, 30}, changes[0].Added)
	assert.Equal(t, 0, changes[0].From)
	assert.Equal(t, 3, list.Len())
}

func Test_List_AppendAllWithNoItemsDoesNotNotify(t *testing.T) {
	list := NewList[int]()

	var changes int
	list.AddChangeListener(func(_ Change[int]) {
		changes++
	})

	list.AppendAll()

	assert.Equal(t, 0, changes)
}

func Test_List_ChangeListenersFireBeforeInvalidationListeners(t *testing.T) {
	list := NewList[int]()

	var order []string
	list.AddListener(func(_ Observable) {
		order = append(order, "invalidation")
	})
	list.AddChangeListener(func(_ Change[int]) {
		order = append(order, "change")
	})

	list.Append(1)

	assert.Equal(t, []string{"change", "invalidation"}, order)
}

func Test_List_UnsubscribedChangeListenerIsNotNotified(t *testing.T) {
	list := NewList[int]()

	var notifications int
	sub := list.AddChangeListener(func(_ Change[int]) {
		notifications++
	})

	list.Append(1)
	sub.Unsubscribe()
	list.Append(2)

	assert.Equal(t, 1, notifications)
}

func Test_View_ExposesListContentsReadOnly(t *testing.T) {
	list := NewList[string]()
	list.Append("a")

	view := NewView(list)

	assert.Equal(t, 1, view.Len())
	assert.Equal(t, "a", view.Get(0))
	assert.Equal(t, []string{"a"}, view.Items())
}

func Test_View_ReflectsLaterListMutations(t *testing.T) {
	list := NewList[int]()
	view := NewView(list)

	list.Append(7)

	assert.Equal(t, 1, view.Len())
	assert.Equal(t, 7, view.Get(0))
}

func Test_View_ForwardsListenerSubscriptions(t *testing.T) {
	list := NewList[int]()
	view := NewView(list)

	var changes int
	view.AddChangeListener(func(_ Change[int]) {
		changes++
	})

	list.Append(1)

	assert.Equal(t, 1, changes)
}
