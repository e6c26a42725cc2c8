package redis

import (
	"fmt"

	"github.com/uolchat/batepapo/internal/model"
)

// Key prefix for all chat data
const keyPrefix = "batepapo"

// participantKey returns the Redis key for a Participant record
func participantKey(name string) string {
	return fmt.Sprintf("%s:participant:%s", keyPrefix, name)
}

// participantSetKey returns the Redis key for the SET of live participant names
func participantSetKey() string {
	return fmt.Sprintf("%s:participants", keyPrefix)
}

// messageKey returns the Redis key for a Message record
func messageKey(id model.MessageID) string {
	return fmt.Sprintf("%s:message:%s", keyPrefix, id)
}

// messageLogKey returns the Redis key for the LIST of message ids in creation order
func messageLogKey() string {
	return fmt.Sprintf("%s:messages", keyPrefix)
}
