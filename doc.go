// Package amqp defines the broker-agnostic contracts of an AMQP 0-9-1 channel layer.
//
// A Channel turns application intents (declare a queue, bind an exchange, start a
// transaction, pause delivery) into protocol requests. Every request method returns as
// soon as the request frame has been handed to the transport; the broker's reply is
// reported later, and in request order, through the Handler attached to the channel.
//
//	ch, err := conn.Channel(&amqp.HandlerFuncs{
//		QueueDeclared: func(ch amqp.Channel, name string, messages, consumers uint32) {
//			log.Printf("queue %s ready with %d messages", name, messages)
//		},
//	})
//	if err != nil {
//		return err
//	}
//	if err := ch.DeclareQueue("jobs", amqp.Durable, nil); err != nil {
//		return err // the request never left the client
//	}
//
// Channels can only be obtained from their owning Connection.
//
// The only implementation provided at the time of writing is:
// - rabbitmq (github.com/jacklaaa89/go-amqp-channel/rabbitmq)
package amqp
