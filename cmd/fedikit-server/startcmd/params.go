/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fedikit/fedikit/internal/pkg/cmdutil"
	"github.com/fedikit/fedikit/pkg/httpserver/auth"
	"github.com/fedikit/fedikit/pkg/service/spi"
)

const (
	commonEnvVarUsageText = "Alternatively, this can be set with the following environment variable: "

	hostURLFlagName      = "host-url"
	hostURLFlagShorthand = "u"
	hostURLFlagUsage     = "URL to run the fedikit-server instance on. Format: HostName:Port."
	hostURLEnvKey        = "FEDIKIT_HOST_URL"

	hostMetricsURLFlagName  = "host-metrics-url"
	hostMetricsURLFlagUsage = "URL that exposes the metrics endpoint. Format: HostName:Port. " +
		"If not specified then metrics are not served." + commonEnvVarUsageText + hostMetricsURLEnvKey
	hostMetricsURLEnvKey = "FEDIKIT_HOST_METRICS_URL"

	externalEndpointFlagName      = "external-endpoint"
	externalEndpointFlagShorthand = "e"
	externalEndpointFlagUsage     = "External endpoint that clients use to invoke services." +
		" This endpoint is used to generate the IDs of ActivityPub objects and" +
		" should be resolvable by external clients. Format: https://HostName[:Port]."
	externalEndpointEnvKey = "FEDIKIT_EXTERNAL_ENDPOINT"

	tlsCertificateFlagName      = "tls-certificate"
	tlsCertificateFlagShorthand = "y"
	tlsCertificateFlagUsage     = "TLS certificate for the fedikit server. " + commonEnvVarUsageText + tlsCertificateEnvKey
	tlsCertificateEnvKey        = "FEDIKIT_TLS_CERTIFICATE"

	tlsKeyFlagName      = "tls-key"
	tlsKeyFlagShorthand = "x"
	tlsKeyFlagUsage     = "TLS key for the fedikit server. " + commonEnvVarUsageText + tlsKeyEnvKey
	tlsKeyEnvKey        = "FEDIKIT_TLS_KEY"

	tlsSystemCertPoolFlagName  = "tls-systemcertpool"
	tlsSystemCertPoolFlagUsage = "Use the system certificate pool for outbound TLS connections. " +
		"Possible values [true] [false]. Defaults to false. " + commonEnvVarUsageText + tlsSystemCertPoolEnvKey
	tlsSystemCertPoolEnvKey = "FEDIKIT_TLS_SYSTEMCERTPOOL"

	tlsCACertsFlagName  = "tls-cacerts"
	tlsCACertsFlagUsage = "Comma-separated list of CA certificates to trust for outbound TLS connections. " +
		commonEnvVarUsageText + tlsCACertsEnvKey
	tlsCACertsEnvKey = "FEDIKIT_TLS_CACERTS"

	databaseTypeFlagName      = "database-type"
	databaseTypeFlagShorthand = "t"
	databaseTypeFlagUsage     = "The type of database to use. Supported options: mem, mongodb. " +
		commonEnvVarUsageText + databaseTypeEnvKey
	databaseTypeEnvKey = "FEDIKIT_DATABASE_TYPE"

	databaseURLFlagName      = "database-url"
	databaseURLFlagShorthand = "v"
	databaseURLFlagUsage     = "The URL of the database. Not needed if using memstore. " +
		commonEnvVarUsageText + databaseURLEnvKey
	databaseURLEnvKey = "FEDIKIT_DATABASE_URL"

	mqURLFlagName      = "mq-url"
	mqURLFlagShorthand = "q"
	mqURLFlagUsage     = "The URL of the AMQP message broker. If not specified then an in-memory " +
		"message queue is used. " + commonEnvVarUsageText + mqURLEnvKey
	mqURLEnvKey = "FEDIKIT_MQ_URL"

	mqMaxConnectionChannelsFlagName  = "mq-max-connection-channels"
	mqMaxConnectionChannelsFlagUsage = "The maximum number of channels per AMQP connection. " +
		commonEnvVarUsageText + mqMaxConnectionChannelsEnvKey
	mqMaxConnectionChannelsEnvKey = "FEDIKIT_MQ_MAX_CONNECTION_CHANNELS"

	privateKeyPEMFlagName  = "private-key"
	privateKeyPEMFlagUsage = "The PEM-encoded ed25519 private key with which outbound requests are signed. " +
		"If not specified then an ephemeral key is generated on startup. " + commonEnvVarUsageText + privateKeyPEMEnvKey
	privateKeyPEMEnvKey = "FEDIKIT_PRIVATE_KEY"

	authTokensDefFlagName      = "auth-tokens-def"
	authTokensDefFlagShorthand = "D"
	authTokensDefFlagUsage     = "Authorization token definitions in the format " +
		"<endpoint-expression>|<read-token-names>|<write-token-names>, where token names are separated by '&'. " +
		commonEnvVarUsageText + authTokensDefEnvKey
	authTokensDefEnvKey = "FEDIKIT_AUTH_TOKENS_DEF"

	authTokensFlagName      = "auth-tokens"
	authTokensFlagShorthand = "A"
	authTokensFlagUsage     = "Authorization tokens in the format <name>=<value>. " +
		commonEnvVarUsageText + authTokensEnvKey
	authTokensEnvKey = "FEDIKIT_AUTH_TOKENS"

	maintenanceModeFlagName  = "maintenance-mode"
	maintenanceModeFlagUsage = "Run the server in maintenance mode: endpoints that modify state return " +
		"503 (Service Unavailable). Possible values [true] [false]. Defaults to false. " +
		commonEnvVarUsageText + maintenanceModeEnvKey
	maintenanceModeEnvKey = "FEDIKIT_MAINTENANCE_MODE"

	followPolicyFlagName  = "follow-policy"
	followPolicyFlagUsage = "The policy applied to inbound Follow activities. Supported options: " +
		"accept, reject, none. " + commonEnvVarUsageText + followPolicyEnvKey
	followPolicyEnvKey = "FEDIKIT_FOLLOW_POLICY"

	pageSizeFlagName  = "page-size"
	pageSizeFlagUsage = "The maximum number of items per collection page. " +
		commonEnvVarUsageText + pageSizeEnvKey
	pageSizeEnvKey = "FEDIKIT_PAGE_SIZE"

	tracingProviderFlagName  = "tracing-provider"
	tracingProviderFlagUsage = "The tracing provider. Supported options: JAEGER. If not specified then " +
		"tracing is disabled. " + commonEnvVarUsageText + tracingProviderEnvKey
	tracingProviderEnvKey = "FEDIKIT_TRACING_PROVIDER"

	tracingCollectorURLFlagName  = "tracing-collector-url"
	tracingCollectorURLFlagUsage = "The URL of the tracing collector. " +
		commonEnvVarUsageText + tracingCollectorURLEnvKey
	tracingCollectorURLEnvKey = "FEDIKIT_TRACING_COLLECTOR_URL"
)

const (
	databaseTypeMem     = "mem"
	databaseTypeMongoDB = "mongodb"

	defaultPageSize = 50

	followPolicyAccept = "accept"
	followPolicyReject = "reject"
	followPolicyNone   = "none"
)

type serverParams struct {
	hostURL        string
	hostMetricsURL string

	externalEndpoint *url.URL

	tlsCertificate    string
	tlsKey            string
	tlsSystemCertPool bool
	tlsCACerts        []string

	databaseType string
	databaseURL  string

	mqURL                   string
	mqMaxConnectionChannels int

	privateKeyPEM string

	authTokens auth.Config

	maintenanceMode bool

	followPolicy spi.OnFollowPolicy

	pageSize int

	tracingProvider     string
	tracingCollectorURL string
}

//nolint:funlen
func getStartCmdParams(cmd *cobra.Command) (*serverParams, error) {
	hostURL, err := cmdutil.GetUserSetVarFromString(cmd, hostURLFlagName, hostURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	externalEndpointStr, err := cmdutil.GetUserSetVarFromString(cmd, externalEndpointFlagName,
		externalEndpointEnvKey, false)
	if err != nil {
		return nil, err
	}

	externalEndpoint, err := url.Parse(externalEndpointStr)
	if err != nil || !externalEndpoint.IsAbs() {
		return nil, fmt.Errorf("%s must be an absolute URL", externalEndpointFlagName)
	}

	databaseType := cmdutil.GetUserSetOptionalVarFromString(cmd, databaseTypeFlagName, databaseTypeEnvKey)
	if databaseType == "" {
		databaseType = databaseTypeMem
	}

	if databaseType != databaseTypeMem && databaseType != databaseTypeMongoDB {
		return nil, fmt.Errorf("unsupported database type: %s", databaseType)
	}

	databaseURL := cmdutil.GetUserSetOptionalVarFromString(cmd, databaseURLFlagName, databaseURLEnvKey)

	if databaseType == databaseTypeMongoDB && databaseURL == "" {
		return nil, fmt.Errorf("%s is required for database type %s", databaseURLFlagName, databaseTypeMongoDB)
	}

	tlsSystemCertPool := false

	if str := cmdutil.GetUserSetOptionalVarFromString(cmd, tlsSystemCertPoolFlagName,
		tlsSystemCertPoolEnvKey); str != "" {
		tlsSystemCertPool, err = strconv.ParseBool(str)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s [%s]: %w", tlsSystemCertPoolFlagName, str, err)
		}
	}

	maintenanceMode := false

	if str := cmdutil.GetUserSetOptionalVarFromString(cmd, maintenanceModeFlagName,
		maintenanceModeEnvKey); str != "" {
		maintenanceMode, err = strconv.ParseBool(str)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s [%s]: %w", maintenanceModeFlagName, str, err)
		}
	}

	mqMaxConnectionChannels, err := getOptionalInt(cmd, mqMaxConnectionChannelsFlagName,
		mqMaxConnectionChannelsEnvKey, 0)
	if err != nil {
		return nil, err
	}

	authTokens, err := getAuthTokens(cmd)
	if err != nil {
		return nil, err
	}

	followPolicy, err := getFollowPolicy(cmd)
	if err != nil {
		return nil, err
	}

	pageSize, err := getOptionalInt(cmd, pageSizeFlagName, pageSizeEnvKey, defaultPageSize)
	if err != nil {
		return nil, err
	}

	return &serverParams{
		hostURL:                 hostURL,
		hostMetricsURL:          cmdutil.GetUserSetOptionalVarFromString(cmd, hostMetricsURLFlagName, hostMetricsURLEnvKey),
		externalEndpoint:        externalEndpoint,
		tlsCertificate:          cmdutil.GetUserSetOptionalVarFromString(cmd, tlsCertificateFlagName, tlsCertificateEnvKey),
		tlsKey:                  cmdutil.GetUserSetOptionalVarFromString(cmd, tlsKeyFlagName, tlsKeyEnvKey),
		tlsSystemCertPool:       tlsSystemCertPool,
		tlsCACerts:              cmdutil.GetUserSetOptionalVarFromArrayString(cmd, tlsCACertsFlagName, tlsCACertsEnvKey),
		databaseType:            databaseType,
		databaseURL:             databaseURL,
		mqURL:                   cmdutil.GetUserSetOptionalVarFromString(cmd, mqURLFlagName, mqURLEnvKey),
		mqMaxConnectionChannels: mqMaxConnectionChannels,
		privateKeyPEM:           cmdutil.GetUserSetOptionalVarFromString(cmd, privateKeyPEMFlagName, privateKeyPEMEnvKey),
		authTokens:              authTokens,
		maintenanceMode:         maintenanceMode,
		followPolicy:            followPolicy,
		pageSize:                pageSize,
		tracingProvider:         cmdutil.GetUserSetOptionalVarFromString(cmd, tracingProviderFlagName, tracingProviderEnvKey),
		tracingCollectorURL: cmdutil.GetUserSetOptionalVarFromString(cmd, tracingCollectorURLFlagName,
			tracingCollectorURLEnvKey),
	}, nil
}

func getOptionalInt(cmd *cobra.Command, flagName, envKey string, defaultValue int) (int, error) {
	str := cmdutil.GetUserSetOptionalVarFromString(cmd, flagName, envKey)
	if str == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s [%s]: %w", flagName, str, err)
	}

	return value, nil
}

func getAuthTokens(cmd *cobra.Command) (auth.Config, error) {
	defs := cmdutil.GetUserSetOptionalVarFromArrayString(cmd, authTokensDefFlagName, authTokensDefEnvKey)

	authTokensDef := make([]*auth.TokenDef, 0, len(defs))

	for _, def := range defs {
		parts := strings.Split(def, "|")

		const maxParts = 3

		if len(parts) > maxParts || parts[0] == "" {
			return auth.Config{}, fmt.Errorf("invalid auth token definition [%s]: expecting format "+
				"<endpoint-expression>|<read-token-names>|<write-token-names>", def)
		}

		tokenDef := &auth.TokenDef{EndpointExpression: parts[0]}

		if len(parts) > 1 && parts[1] != "" {
			tokenDef.ReadTokens = strings.Split(parts[1], "&")
		}

		if len(parts) > 2 && parts[2] != "" {
			tokenDef.WriteTokens = strings.Split(parts[2], "&")
		}

		authTokensDef = append(authTokensDef, tokenDef)
	}

	tokens := cmdutil.GetUserSetOptionalVarFromArrayString(cmd, authTokensFlagName, authTokensEnvKey)

	authTokens := make(map[string]string, len(tokens))

	for _, token := range tokens {
		name, value, found := strings.Cut(token, "=")
		if !found || name == "" {
			return auth.Config{}, fmt.Errorf("invalid auth token [%s]: expecting format <name>=<value>", token)
		}

		authTokens[name] = value
	}

	return auth.Config{AuthTokensDef: authTokensDef, AuthTokens: authTokens}, nil
}

func getFollowPolicy(cmd *cobra.Command) (spi.OnFollowPolicy, error) {
	policy := cmdutil.GetUserSetOptionalVarFromString(cmd, followPolicyFlagName, followPolicyEnvKey)

	switch policy {
	case "", followPolicyAccept:
		return spi.OnFollowAutoAccept, nil
	case followPolicyReject:
		return spi.OnFollowAutoReject, nil
	case followPolicyNone:
		return spi.OnFollowDoNothing, nil
	default:
		return spi.OnFollowDoNothing, fmt.Errorf("unsupported follow policy: %s", policy)
	}
}

func createFlags(startCmd *cobra.Command) {
	startCmd.Flags().StringP(hostURLFlagName, hostURLFlagShorthand, "", hostURLFlagUsage)
	startCmd.Flags().StringP(hostMetricsURLFlagName, "", "", hostMetricsURLFlagUsage)
	startCmd.Flags().StringP(externalEndpointFlagName, externalEndpointFlagShorthand, "", externalEndpointFlagUsage)
	startCmd.Flags().StringP(tlsCertificateFlagName, tlsCertificateFlagShorthand, "", tlsCertificateFlagUsage)
	startCmd.Flags().StringP(tlsKeyFlagName, tlsKeyFlagShorthand, "", tlsKeyFlagUsage)
	startCmd.Flags().StringP(tlsSystemCertPoolFlagName, "", "", tlsSystemCertPoolFlagUsage)
	startCmd.Flags().StringArrayP(tlsCACertsFlagName, "", nil, tlsCACertsFlagUsage)
	startCmd.Flags().StringP(databaseTypeFlagName, databaseTypeFlagShorthand, "", databaseTypeFlagUsage)
	startCmd.Flags().StringP(databaseURLFlagName, databaseURLFlagShorthand, "", databaseURLFlagUsage)
	startCmd.Flags().StringP(mqURLFlagName, mqURLFlagShorthand, "", mqURLFlagUsage)
	startCmd.Flags().StringP(mqMaxConnectionChannelsFlagName, "", "", mqMaxConnectionChannelsFlagUsage)
	startCmd.Flags().StringP(privateKeyPEMFlagName, "", "", privateKeyPEMFlagUsage)
	startCmd.Flags().StringArrayP(authTokensDefFlagName, authTokensDefFlagShorthand, nil, authTokensDefFlagUsage)
	startCmd.Flags().StringArrayP(authTokensFlagName, authTokensFlagShorthand, nil, authTokensFlagUsage)
	startCmd.Flags().StringP(maintenanceModeFlagName, "", "", maintenanceModeFlagUsage)
	startCmd.Flags().StringP(followPolicyFlagName, "", "", followPolicyFlagUsage)
	startCmd.Flags().StringP(pageSizeFlagName, "", "", pageSizeFlagUsage)
	startCmd.Flags().StringP(tracingProviderFlagName, "", "", tracingProviderFlagUsage)
	startCmd.Flags().StringP(tracingCollectorURLFlagName, "", "", tracingCollectorURLFlagUsage)
}
