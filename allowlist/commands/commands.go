package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
)

var Commands = []discord.ApplicationCommandCreate{
	SetupApplication,
	SetupCooldownChannel,
	CooldownExempt,
	Applications,
	Version,
}

const MsgMissingPermission = "You do not have permission to use this command."

func hasPermission(e *handler.CommandEvent, perm discord.Permissions) bool {
	member := e.Member()
	return member != nil && member.Permissions.Has(perm)
}
