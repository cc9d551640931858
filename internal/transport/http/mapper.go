package http

import (
	"encoding/json"

	"github.com/soloviov/gamelobby-server/internal/core"
	"github.com/soloviov/gamelobby-server/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeHello:
		var hello proto.HelloData
		if err := json.Unmarshal(inbound.Data, &hello); err != nil {
			return nil, nil, err
		}
		if hello.Name == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "name is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandSetName,
			Name: hello.Name,
		}, nil, nil
	case proto.InboundTypeJoinRoom:
		var join proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		if join.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandJoinRoom,
			Room: join.RoomID,
			Name: join.Name,
		}, nil, nil
	case proto.InboundTypeLeaveRoom:
		var leave proto.LeaveRoomData
		if err := json.Unmarshal(inbound.Data, &leave); err != nil {
			return nil, nil, err
		}
		if leave.RoomID == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "roomId is required"}, nil
		}
		return &core.Command{
			Kind: core.CommandLeaveRoom,
			Room: leave.RoomID,
		}, nil, nil
	case proto.InboundTypeGetRooms:
		return &core.Command{Kind: core.CommandListRooms}, nil, nil
	default:
		return nil, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventPlayerJoined:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventPlayerJoined,
			Data:  membersToProto(event.Members),
		}
	case core.EventRoomFull:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRoomFull,
		}
	case core.EventStartGame:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventStartGame,
		}
	case core.EventRoomsUpdate:
		rooms := make(map[string][]proto.Member, len(event.Rooms))
		for roomID, members := range event.Rooms {
			rooms[roomID] = membersToProto(members)
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRoomsUpdate,
			Data:  rooms,
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}

func membersToProto(members []core.Member) []proto.Member {
	out := make([]proto.Member, 0, len(members))
	for _, m := range members {
		out = append(out, proto.Member{ID: m.ID, Name: m.Name})
	}
	return out
}
