// Package controllers implements the StormConfig reconciliation logic.
package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/go-containerregistry/pkg/authn"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/types"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/builder"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/controller/controllerutil"
	"sigs.k8s.io/controller-runtime/pkg/handler"
	"sigs.k8s.io/controller-runtime/pkg/predicate"
	"sigs.k8s.io/controller-runtime/pkg/reconcile"

	stormv1alpha1 "github.com/stormops/k8s-storm-operator-go/api/v1alpha1"
	"github.com/stormops/k8s-storm-operator-go/internal/catalog"
	"github.com/stormops/k8s-storm-operator-go/internal/compiler"
	"github.com/stormops/k8s-storm-operator-go/internal/converge"
	"github.com/stormops/k8s-storm-operator-go/internal/defaults"
	"github.com/stormops/k8s-storm-operator-go/internal/monitoring"
	"github.com/stormops/k8s-storm-operator-go/internal/params"
	"github.com/stormops/k8s-storm-operator-go/internal/registry"
	"github.com/stormops/k8s-storm-operator-go/internal/values"
)

const (
	finalizerName          = "storm.stormops.io/finalizer"
	defaultPollInterval    = 15 * time.Minute
	sourceRetryInterval    = time.Minute
	maxConsecutiveFailures = 5
)

// StormConfigReconciler reconciles StormConfig resources.
//
// Each reconcile compiles the full configuration from scratch: Hiera sources
// first, explicit spec parameters on top, then the registry-pinned package
// version. The result is published in one ConfigMap owned by the resource.
// controller-runtime serializes reconciles of the same object, so status
// updates need no extra locking.
type StormConfigReconciler struct {
	client.Client
	Scheme         *runtime.Scheme
	RegistryClient registry.Client
	Resolver       values.Resolver
}

// +kubebuilder:rbac:groups=storm.stormops.io,resources=stormconfigs,verbs=get;list;watch;update;patch
// +kubebuilder:rbac:groups=storm.stormops.io,resources=stormconfigs/status,verbs=get;update;patch
// +kubebuilder:rbac:groups="",resources=configmaps,verbs=create;get;list;watch;update
// +kubebuilder:rbac:groups="",resources=secrets,verbs=get;list;watch

// Reconcile implements the reconciliation loop for StormConfig.
func (r *StormConfigReconciler) Reconcile(ctx context.Context, req ctrl.Request) (ctrl.Result, error) {
	log := ctrl.LoggerFrom(ctx)

	sc := &stormv1alpha1.StormConfig{}
	if err := r.Get(ctx, req.NamespacedName, sc); err != nil {
		if apierrors.IsNotFound(err) {
			return ctrl.Result{}, nil
		}
		log.Error(err, "unable to fetch StormConfig")
		return ctrl.Result{}, err
	}

	if sc.DeletionTimestamp != nil {
		if controllerutil.ContainsFinalizer(sc, finalizerName) {
			// The ConfigMap is garbage collected through its owner reference.
			monitoring.DeleteConfig(sc.Name, sc.Namespace)
			controllerutil.RemoveFinalizer(sc, finalizerName)
			if err := r.Update(ctx, sc); err != nil {
				log.Error(err, "failed to remove finalizer")
				return ctrl.Result{}, err
			}
		}
		return ctrl.Result{}, nil
	}

	if !controllerutil.ContainsFinalizer(sc, finalizerName) {
		controllerutil.AddFinalizer(sc, finalizerName)
		if err := r.Update(ctx, sc); err != nil {
			log.Error(err, "failed to add finalizer")
			return ctrl.Result{}, err
		}
	}

	if sc.Status.Phase == "" {
		if err := r.updateStatusRendering(ctx, sc); err != nil {
			log.Error(err, "failed to update status to Rendering")
			return ctrl.Result{}, err
		}
	}

	if err := sc.ValidateHieraSources(); err != nil {
		log.Info("invalid hiera sources", "error", err.Error())
		return ctrl.Result{}, r.updateStatusFailed(ctx, sc, err.Error())
	}

	hiera, err := r.resolver().ResolveHiera(ctx, sc.Spec.HieraFrom, sc.Namespace)
	if err != nil {
		log.Info("failed to resolve hiera data", "error", err.Error())
		if err := r.updateStatusFailed(ctx, sc, fmt.Sprintf("Failed to resolve hiera data: %v", err)); err != nil {
			return ctrl.Result{}, err
		}
		// A missing source may still be created.
		if apierrors.IsNotFound(err) {
			return ctrl.Result{RequeueAfter: sourceRetryInterval}, nil
		}
		return ctrl.Result{}, nil
	}

	explicit, err := values.FromSpec(sc.Spec)
	if err != nil {
		return ctrl.Result{}, r.updateStatusFailed(ctx, sc, fmt.Sprintf("Invalid parameters: %v", err))
	}
	raw := values.Merge(hiera, explicit)

	var requeue time.Duration
	if reg := registryConfig(sc); reg != nil {
		version, result, done, err := r.resolvePackageVersion(ctx, sc, reg)
		if done || err != nil {
			return result, err
		}
		raw[params.PackageEnsure] = version
		requeue = result.RequeueAfter
	}

	facts := defaults.Facts{
		OSFamily:        sc.Spec.Facts.OSFamily,
		OperatingSystem: sc.Spec.Facts.OperatingSystem,
	}
	start := time.Now()
	result, err := compiler.Compile(ctx, raw, facts)
	monitoring.RecordCompile(err, time.Since(start))
	if err != nil {
		if isConfigurationError(err) {
			// Only a spec or data change can fix this; no requeue.
			log.Info("configuration rejected", "error", err.Error())
			return ctrl.Result{}, r.updateStatusFailed(ctx, sc, err.Error())
		}
		log.Error(err, "failed to compile")
		if err := r.updateStatusFailed(ctx, sc, fmt.Sprintf("Failed to compile: %v", err)); err != nil {
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, err
	}

	cm, err := converge.NewBuilder(sc).WithScheme(r.Scheme).Build(result)
	if err != nil {
		log.Error(err, "failed to build ConfigMap")
		return ctrl.Result{}, r.updateStatusFailed(ctx, sc, fmt.Sprintf("Failed to build ConfigMap: %v", err))
	}
	if err := r.publish(ctx, cm); err != nil {
		log.Error(err, "failed to publish ConfigMap", "configMap", cm.Name)
		if err := r.updateStatusFailed(ctx, sc, fmt.Sprintf("Failed to publish ConfigMap: %v", err)); err != nil {
			return ctrl.Result{}, err
		}
		return ctrl.Result{}, err
	}

	if err := r.updateStatusRendered(ctx, sc, cm.Name, result); err != nil {
		log.Error(err, "failed to update status to Rendered")
		return ctrl.Result{}, err
	}
	log.Info("StormConfig rendered", "configMap", cm.Name, "checksum", result.Checksum(), "resources", result.Catalog.Count())

	return ctrl.Result{RequeueAfter: requeue}, nil
}

func (r *StormConfigReconciler) resolver() values.Resolver {
	if r.Resolver != nil {
		return r.Resolver
	}
	return values.NewResolver(r.Client)
}

func registryConfig(sc *stormv1alpha1.StormConfig) *stormv1alpha1.RegistryConfig {
	if sc.Spec.Package == nil {
		return nil
	}
	return sc.Spec.Package.Registry
}

// resolvePackageVersion polls the registry and returns the pinned version and
// the next poll. When done is true the reconcile ends with result and err.
func (r *StormConfigReconciler) resolvePackageVersion(
	ctx context.Context,
	sc *stormv1alpha1.StormConfig,
	reg *stormv1alpha1.RegistryConfig,
) (version string, result ctrl.Result, done bool, err error) {
	log := ctrl.LoggerFrom(ctx).WithValues("registry", reg.URL)

	pollInterval := defaultPollInterval
	if reg.PollInterval != "" {
		parsed, err := time.ParseDuration(reg.PollInterval)
		if err != nil {
			log.Error(err, "invalid pollInterval in spec, using default", "pollInterval", reg.PollInterval)
		} else {
			pollInterval = parsed
		}
	}
	next := ctrl.Result{RequeueAfter: registry.AddJitter(pollInterval)}

	if r.RegistryClient == nil {
		return "", ctrl.Result{}, true, r.updateStatusFailed(ctx, sc, "Package registry configured but no registry client available")
	}

	auth, err := r.registryAuth(ctx, sc, reg)
	if err != nil {
		log.Info("failed to load registry credentials", "error", err.Error())
		if err := r.updateStatusFailed(ctx, sc, fmt.Sprintf("Failed to load registry credentials: %v", err)); err != nil {
			return "", ctrl.Result{}, true, err
		}
		return "", ctrl.Result{RequeueAfter: sourceRetryInterval}, true, nil
	}

	// Without a resolved version a cached ETag is useless.
	lastETag := sc.Status.LastETag
	if sc.Status.ResolvedPackageVersion == "" {
		lastETag = ""
	}

	tags, etag, err := r.RegistryClient.ListTagsWithETag(ctx, reg.URL, auth, lastETag)
	if err != nil {
		var notModified *registry.NotModifiedError
		if errors.As(err, &notModified) {
			log.V(1).Info("registry content unchanged (cached ETag valid)")
			r.resetRegistryFailures(sc)
			return sc.Status.ResolvedPackageVersion, next, false, nil
		}

		sc.Status.ConsecutiveFailures++
		now := metav1.Now()
		sc.Status.LastErrorTime = &now
		monitoring.SetRegistryFailures(sc.Name, sc.Namespace, sc.Status.ConsecutiveFailures)
		log.Info("registry poll failed, incrementing retry counter",
			"failures", sc.Status.ConsecutiveFailures, "maxRetries", maxConsecutiveFailures)

		if sc.Status.ConsecutiveFailures >= maxConsecutiveFailures {
			log.Info("max consecutive failures reached, marking StormConfig as Failed")
			errMsg := fmt.Sprintf("Registry error after %d retries: %v", maxConsecutiveFailures, err)
			return "", ctrl.Result{}, true, r.updateStatusFailed(ctx, sc, errMsg)
		}

		backoff := registry.CalculateBackoff(sc.Status.ConsecutiveFailures)
		log.Info("requeuing with exponential backoff", "backoff", backoff)
		errMsg := fmt.Sprintf("Registry error (attempt %d/%d): %v",
			sc.Status.ConsecutiveFailures, maxConsecutiveFailures, err)
		if err := r.updateStatusFailed(ctx, sc, errMsg); err != nil {
			return "", ctrl.Result{}, true, err
		}
		return "", ctrl.Result{RequeueAfter: backoff}, true, nil
	}

	r.resetRegistryFailures(sc)
	sc.Status.LastETag = etag

	version, err = registry.SelectVersion(tags, reg.VersionConstraint)
	if err != nil {
		log.Info("no usable package version", "tags", len(tags), "constraint", reg.VersionConstraint)
		if err := r.updateStatusFailed(ctx, sc, fmt.Sprintf("Failed to select package version: %v", err)); err != nil {
			return "", ctrl.Result{}, true, err
		}
		return "", next, true, nil
	}
	if version != sc.Status.ResolvedPackageVersion {
		log.Info("package version resolved", "version", version, "previous", sc.Status.ResolvedPackageVersion)
	}
	return version, next, false, nil
}

func (r *StormConfigReconciler) resetRegistryFailures(sc *stormv1alpha1.StormConfig) {
	if sc.Status.ConsecutiveFailures > 0 {
		sc.Status.ConsecutiveFailures = 0
		monitoring.SetRegistryFailures(sc.Name, sc.Namespace, 0)
	}
}

func (r *StormConfigReconciler) registryAuth(
	ctx context.Context,
	sc *stormv1alpha1.StormConfig,
	reg *stormv1alpha1.RegistryConfig,
) (authn.Authenticator, error) {
	if reg.SecretRef == nil || reg.SecretRef.Name == "" {
		return nil, nil
	}
	secret := &corev1.Secret{}
	key := types.NamespacedName{Name: reg.SecretRef.Name, Namespace: sc.Namespace}
	if err := r.Get(ctx, key, secret); err != nil {
		return nil, fmt.Errorf("failed to get Secret %q: %w", reg.SecretRef.Name, err)
	}
	return registry.AuthFromSecret(secret, reg.URL)
}

// publish creates the ConfigMap or updates it when its content drifted.
func (r *StormConfigReconciler) publish(ctx context.Context, desired *corev1.ConfigMap) error {
	existing := &corev1.ConfigMap{}
	err := r.Get(ctx, client.ObjectKeyFromObject(desired), existing)
	if apierrors.IsNotFound(err) {
		if err := r.Create(ctx, desired); err != nil {
			return fmt.Errorf("failed to create ConfigMap: %w", err)
		}
		ctrl.LoggerFrom(ctx).Info("ConfigMap created", "configMap", desired.Name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get ConfigMap: %w", err)
	}
	if !converge.Update(existing, desired) {
		return nil
	}
	if err := r.Update(ctx, existing); err != nil {
		return fmt.Errorf("failed to update ConfigMap: %w", err)
	}
	ctrl.LoggerFrom(ctx).Info("ConfigMap updated", "configMap", desired.Name)
	return nil
}

// isConfigurationError reports errors that retrying cannot fix.
func isConfigurationError(err error) bool {
	var (
		validation *params.ValidationError
		unknown    *params.UnknownParameterError
		platform   *params.UnsupportedPlatformError
		duplicate  *catalog.DuplicateResourceError
	)
	return errors.As(err, &validation) || errors.As(err, &unknown) ||
		errors.As(err, &platform) || errors.As(err, &duplicate)
}

// updateStatusRendering sets status to Rendering and clears the error.
func (r *StormConfigReconciler) updateStatusRendering(ctx context.Context, sc *stormv1alpha1.StormConfig) error {
	sc.Status.Phase = stormv1alpha1.PhaseRendering
	sc.Status.LastErrorMessage = ""
	monitoring.SetConfigInfo(sc.Name, sc.Namespace, sc.Status.Phase)
	return r.Status().Update(ctx, sc)
}

// updateStatusRendered records a successful render.
func (r *StormConfigReconciler) updateStatusRendered(
	ctx context.Context,
	sc *stormv1alpha1.StormConfig,
	configMapName string,
	result *compiler.Result,
) error {
	sc.Status.Phase = stormv1alpha1.PhaseRendered
	sc.Status.ObservedGeneration = sc.Generation
	sc.Status.ConfigMapName = configMapName
	sc.Status.ConfigChecksum = result.Checksum()
	sc.Status.ResourceCount = int32(result.Catalog.Count())
	sc.Status.ResolvedPackageVersion = ""
	if registryConfig(sc) != nil {
		sc.Status.ResolvedPackageVersion = result.Settings.Package.Ensure
	}
	sc.Status.LastErrorMessage = ""
	now := metav1.Now()
	sc.Status.LastRenderTime = &now

	monitoring.SetConfigInfo(sc.Name, sc.Namespace, sc.Status.Phase)
	monitoring.SetCatalogResources(sc.Name, sc.Namespace, result.Catalog.Count())
	return r.Status().Update(ctx, sc)
}

// updateStatusFailed sets status to Failed with the error message.
func (r *StormConfigReconciler) updateStatusFailed(ctx context.Context, sc *stormv1alpha1.StormConfig, errMsg string) error {
	sc.Status.Phase = stormv1alpha1.PhaseFailed
	sc.Status.ObservedGeneration = sc.Generation
	sc.Status.LastErrorMessage = errMsg
	monitoring.SetConfigInfo(sc.Name, sc.Namespace, sc.Status.Phase)
	return r.Status().Update(ctx, sc)
}

// SetupWithManager sets up the controller with the Manager.
//
// Only StormConfig events are filtered on generation, since status updates
// do not bump it. Owned and Hiera ConfigMaps never change generation, so
// their events pass unfiltered.
func (r *StormConfigReconciler) SetupWithManager(mgr ctrl.Manager) error {
	return ctrl.NewControllerManagedBy(mgr).
		For(&stormv1alpha1.StormConfig{}, builder.WithPredicates(predicate.GenerationChangedPredicate{})).
		Owns(&corev1.ConfigMap{}).
		Watches(&corev1.ConfigMap{}, handler.EnqueueRequestsFromMapFunc(r.hieraConfigMapRequests)).
		Watches(&corev1.Secret{}, handler.EnqueueRequestsFromMapFunc(r.hieraSecretRequests)).
		Complete(r)
}

func (r *StormConfigReconciler) hieraConfigMapRequests(ctx context.Context, obj client.Object) []reconcile.Request {
	return r.hieraRequests(ctx, obj, func(src stormv1alpha1.HieraSource) *corev1.LocalObjectReference {
		return src.ConfigMapRef
	})
}

func (r *StormConfigReconciler) hieraSecretRequests(ctx context.Context, obj client.Object) []reconcile.Request {
	return r.hieraRequests(ctx, obj, func(src stormv1alpha1.HieraSource) *corev1.LocalObjectReference {
		return src.SecretRef
	})
}

// hieraRequests enqueues every StormConfig in the object's namespace that
// lists it as a Hiera source.
func (r *StormConfigReconciler) hieraRequests(
	ctx context.Context,
	obj client.Object,
	ref func(stormv1alpha1.HieraSource) *corev1.LocalObjectReference,
) []reconcile.Request {
	list := &stormv1alpha1.StormConfigList{}
	if err := r.List(ctx, list, client.InNamespace(obj.GetNamespace())); err != nil {
		ctrl.LoggerFrom(ctx).Error(err, "failed to list StormConfigs for hiera source",
			"source", obj.GetName(), "namespace", obj.GetNamespace())
		return nil
	}

	var requests []reconcile.Request
	for _, sc := range list.Items {
		for _, src := range sc.Spec.HieraFrom {
			if named := ref(src); named != nil && named.Name == obj.GetName() {
				requests = append(requests, reconcile.Request{
					NamespacedName: types.NamespacedName{Name: sc.Name, Namespace: sc.Namespace},
				})
				break
			}
		}
	}
	return requests
}
