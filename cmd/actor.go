package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"mattrack/internal/domain/workflow"
	"mattrack/internal/errs"
)

// registerActorFlags adds the identity flags shared by every command
// that acts on behalf of a user.
func registerActorFlags(cmd *cobra.Command) {
	cmd.Flags().String("actor", "", "Acting user identity")
	cmd.Flags().String("role", string(workflow.RoleRequester), "Acting user role (oversight, line-owner, requester)")
	cmd.Flags().StringSlice("lines", nil, "Lines the actor owns (defaults to the assignment table for line owners)")
	_ = cmd.MarkFlagRequired("actor")
}

func actorFromFlags(cmd *cobra.Command, table workflow.AssignmentTable) (workflow.Actor, error) {
	identity, err := cmd.Flags().GetString("actor")
	if err != nil {
		return workflow.Actor{}, errs.Wrap(err, "read actor flag")
	}
	if identity == "" {
		return workflow.Actor{}, errors.New("actor identity is required")
	}

	roleValue, err := cmd.Flags().GetString("role")
	if err != nil {
		return workflow.Actor{}, errs.Wrap(err, "read role flag")
	}
	role, err := workflow.ParseRole(roleValue)
	if err != nil {
		return workflow.Actor{}, errs.Wrap(err, "parse role flag")
	}

	lines, err := cmd.Flags().GetStringSlice("lines")
	if err != nil {
		return workflow.Actor{}, errs.Wrap(err, "read lines flag")
	}
	if role == workflow.RoleLineOwner && len(lines) == 0 {
		lines = table.LinesOf(identity)
	}

	return workflow.Actor{Identity: identity, Role: role, Lines: lines}, nil
}
