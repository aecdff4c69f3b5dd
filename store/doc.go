// Package store keeps conversation history between runs.
//
// A [MessageStore] holds the messages of one session in memory and persists
// them through an [Adapter] under the session id. Records are encoded with
// msgpack. [MemoryAdapter] is the default; [BadgerAdapter] keeps sessions on
// disk:
//
//	adapter, err := store.NewBadgerAdapter(store.BadgerOptions{Dir: dir})
//	if err != nil {
//	    return err
//	}
//	defer adapter.Close()
//
//	history := store.NewMessageStore(adapter)
//	if err := history.Reload(ctx, sessionID); err != nil && !errors.Is(err, store.ErrKeyNotFound) {
//	    return err
//	}
//	history.Append(ai.Message{Role: ai.RoleUser, Content: question})
//	// ... run the agent ...
//	err = history.Sync(ctx, sessionID)
package store
