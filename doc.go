/*
Package adminstore is the persistence layer of the bot-testing admin system.

Bots, test sets, test executions, tasks and task items share one DynamoDB
table. Each entity type is served by a typed repository that derives its
keys from the entity's identifiers, applies partial updates without
clobbering untouched attributes, and pages through listings with opaque
tokens.

Basic Usage:

	cfg, _ := config.Load("adminstore.yaml")
	store, err := adminstore.NewFromConfig(ctx, cfg)
	if err != nil {
	    return err
	}

	bot, err := store.Bots.Create(ctx, models.Bot{Name: "Greeter", Status: "active"})

	bot, err = store.Bots.Patch(ctx, models.BotPatch{
	    Status: update.Some("inactive"),
	}, bot.ID)

	page, err := store.TestExecutions.List(ctx,
	    storagemodels.ListOptions{Count: 20}, bot.ID)
	next, err := store.TestExecutions.List(ctx,
	    storagemodels.ListOptions{Count: 20, Token: page.NextToken}, bot.ID)

Get returns nil without error for an absent row; Update and Patch fail with
errors.ErrNotFound instead of creating one. Errors from DynamoDB are wrapped
but never retried.
*/
package adminstore
